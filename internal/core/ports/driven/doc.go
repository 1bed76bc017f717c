// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - AuthAPI: Login and registration against the backend
//   - DocumentAPI: Listing, uploading and deleting documents
//   - ChatAPI: Asking questions about a document
//   - CredentialsStore: Persistence for the bearer credential
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - SchedulerStore: Scheduler state. Without it, polling state is not recorded.
//   - Notifier: Transient notifications. Without it, notifications are logged only.
//   - PDFInspector: Local PDF validation. Without it, only the extension is checked.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
