// Package auth implements double-hashed password authentication on top of
// package hashing.
//
// # Protocol
//
// The server hands the client a [LoginParams] bundle: scrypt parameters, a
// salt, and a one-time form token.  The client derives
//
//	clientHash = scrypt(password, salt, params)
//
// and sends only clientHash.  The server then derives
//
//	serverHash = scrypt(clientHash, serverSalt, serverParams)
//
// with its own salt and parameters and stores serverHash.  The raw password
// never leaves the client, and a leaked clientHash cannot be replayed
// against the stored value without repeating the second derivation.
//
// [CreateLoginParams], [ClientHashPassword], and [ServerHashPassword] are
// the stateless building blocks.
//
// # Login attempts
//
// [Service] adds the state a real server needs: every issued bundle is
// recorded as an [Attempt] bound to the session it was issued in, and can
// be redeemed exactly once with its form token.  Persistence is delegated
// to an [AttemptRepository]; auth/inmemory and auth/redisstore provide
// implementations.
//
// Registration returns a [Credential] holding the client-phase salt and
// parameters alongside the server hash.  Store it as one record; login
// attempts for that user reissue its client salt so the client reproduces
// the same clientHash.
package auth
