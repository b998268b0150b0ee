// Package identity implements registration, stateless confirmation-code
// issuance, token exchange, and user administration for RateHub.
//
// Layering:
// - domain: user entity, error taxonomy, the confirmation-code engine
// - application: signup / token / profile / user-admin use cases
// - ports: stable boundaries for persistence, notification, credentials
// - adapters: memory and postgres stores, JWT issuer, event notifier, HTTP
// - transport: module-private DTOs for HTTP contracts
//
// No confirmation code or bearer credential is ever persisted: codes are
// re-derived from identity state and credentials are self-contained tokens.
package identity
