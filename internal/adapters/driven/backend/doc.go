// Package backend is the HTTP client for the document question-answering API.
//
// Account calls (login, register) are unauthenticated. Every other call goes
// through an oauth2.Transport whose token source is the application's
// driven.TokenProvider, so a missing or expired credential fails the request
// before it leaves the process.
//
// Non-2xx responses are returned as *APIError. The error's Message carries the
// server's "detail" text when there is one.
package backend
