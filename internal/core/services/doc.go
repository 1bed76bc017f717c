// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The conversation session core lives here: ConversationStore,
// SelectionCoordinator, SessionController and DocumentRegistry. Shared
// state is held in explicit containers passed to the services that need
// them and is always replaced as a whole value.
package services
