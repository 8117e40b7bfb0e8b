// Copyright 2025 The Go STF Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package auth provides the user abstractions consumed by the HTTP
// middleware. It represents authenticated and unauthenticated callers without
// requiring nil checks.
package auth

import "context"

// User represents an authenticated or unauthenticated caller.
type User interface {
	// IsAuthenticated returns true if the user is authenticated.
	IsAuthenticated() bool

	// UserName returns the username of the user. For unauthenticated users,
	// this returns an empty string.
	UserName() string
}

// UnauthenticatedUser represents an unauthenticated caller. It is safe to use
// as a zero value and is immutable.
type UnauthenticatedUser struct{}

// IsAuthenticated always returns false for unauthenticated users.
func (u UnauthenticatedUser) IsAuthenticated() bool {
	return false
}

// UserName always returns an empty string for unauthenticated users.
func (u UnauthenticatedUser) UserName() string {
	return ""
}

// TokenUser is a caller authenticated by a verified bearer token.
type TokenUser struct {
	// Name is the token subject.
	Name string
}

// IsAuthenticated always returns true for token users.
func (u TokenUser) IsAuthenticated() bool {
	return true
}

// UserName returns the token subject.
func (u TokenUser) UserName() string {
	return u.Name
}

type contextKey struct{}

// NewContext returns a context carrying the user.
func NewContext(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// FromContext returns the user carried by ctx, or [UnauthenticatedUser] when
// none is attached.
func FromContext(ctx context.Context) User {
	if user, ok := ctx.Value(contextKey{}).(User); ok {
		return user
	}
	return UnauthenticatedUser{}
}
