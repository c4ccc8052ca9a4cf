// Package auth is the authentication and authorization core of the habit
// tracker backend.
//
// It covers four concerns:
//
//   - password credentials: bcrypt hashing and verification, registration and
//     login with a uniform invalid-credentials failure (PasswordService)
//   - bearer tokens: stateless signed access and refresh tokens with typed
//     expired-vs-invalid failures (TokenService)
//   - OAuth logins: the authorization-code flow against Google and GitHub with
//     state-nonce CSRF protection and email-based identity resolution
//     (OAuthService plus provider adapters)
//   - authorization: resolving a token to a user record and enforcing role
//     requirements (Guard)
//
// Services depend on a UserStore interface and hold no state of their own
// beyond configuration, so all operations are safe for concurrent use.
package auth
