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

package auth

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUserInterface(t *testing.T) {
	var _ User = UnauthenticatedUser{}
	var _ User = TokenUser{}
}

func TestUsers(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		user              User
		wantAuthenticated bool
		wantName          string
	}{
		"unauthenticated": {
			user: UnauthenticatedUser{},
		},
		"token user": {
			user:              TokenUser{Name: "researcher"},
			wantAuthenticated: true,
			wantName:          "researcher",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.user.IsAuthenticated(); got != tt.wantAuthenticated {
				t.Errorf("IsAuthenticated() = %v, want %v", got, tt.wantAuthenticated)
			}
			if diff := cmp.Diff(tt.wantName, tt.user.UserName()); diff != "" {
				t.Errorf("UserName() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if user := FromContext(ctx); user.IsAuthenticated() {
		t.Error("empty context should yield an unauthenticated user")
	}

	ctx = NewContext(ctx, TokenUser{Name: "researcher"})
	user := FromContext(ctx)
	if !user.IsAuthenticated() || user.UserName() != "researcher" {
		t.Errorf("FromContext() = %+v, want token user researcher", user)
	}
}
