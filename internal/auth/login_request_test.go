package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoginRequestIdentifier(t *testing.T) {
	tests := []struct {
		name string
		req  loginRequest
		want string
	}{
		{"identifier wins", loginRequest{Identifier: "alice", Email: "a@example.com"}, "alice"},
		{"email alias", loginRequest{Email: " a@example.com "}, "a@example.com"},
		{"username alias", loginRequest{Identifier: "  ", Username: "bob"}, "bob"},
		{"nothing", loginRequest{Password: "x"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.req.identifier())
		})
	}
}
