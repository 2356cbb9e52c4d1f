// Package auth authenticates the three actors the API serves: end users
// following a one-time emailed link, OAuth2 clients presenting their static
// credentials, and clients acting on behalf of a user with a scoped access
// token.
//
// Strategies:
//   - Every credential check is a Strategy that resolves raw credential
//     material into a Principal or rejects it. The four strategies
//     (mail_auth, client_basic, client_body, client_api) live in an explicit
//     Registry built at startup and passed by reference; there is no global
//     registration.
//   - Strategies report a tagged Outcome (resolved, rejected, failed) so the
//     Dispatcher can map "bad credentials" to 401 and store failures to 5xx
//     without strategies ever erroring on an expected rejection.
//
// Tokens:
//   - MailToken is a single-use capability. The store consumes it with one
//     atomic find-and-delete, so two concurrent redemptions of the same
//     token can never both succeed.
//   - AccessToken is a multi-use bearer credential carrying the scopes the
//     user granted; lookups never mutate it.
//
// Authorization:
//   - EnsureScopesIncluded gates a route on the scopes the resolved
//     principal carries. Denial is always a 403, never conflated with the
//     401s the strategies produce.
package auth
