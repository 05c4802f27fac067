package auth

import (
	"testing"

	"github.com/dmitrijs2005/userhub/internal/server/models"
	"github.com/stretchr/testify/assert"
)

func TestCanView(t *testing.T) {
	t.Parallel()

	admin := Caller{AccountID: "a1", Role: models.RoleAdmin}
	user := Caller{AccountID: "u1", Role: models.RoleUser}
	unknown := Caller{AccountID: "x1", Role: models.Role("root")}

	tests := []struct {
		name   string
		caller Caller
		target string
		want   bool
	}{
		{"admin views anyone", admin, "u2", true},
		{"admin views self", admin, "a1", true},
		{"user views self", user, "u1", true},
		{"user views other", user, "u2", false},
		{"unknown role denied even for self", unknown, "x1", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanView(tc.caller, tc.target))
		})
	}
}

func TestCanUpdate_SameRuleAsView(t *testing.T) {
	t.Parallel()

	callers := []Caller{
		{AccountID: "a1", Role: models.RoleAdmin},
		{AccountID: "u1", Role: models.RoleUser},
		{AccountID: "x1", Role: models.Role("")},
	}
	targets := []string{"a1", "u1", "u2", "x1"}

	for _, c := range callers {
		for _, target := range targets {
			assert.Equal(t, CanView(c, target), CanUpdate(c, target),
				"caller=%+v target=%s", c, target)
		}
	}
}

func TestCanList(t *testing.T) {
	t.Parallel()

	assert.True(t, CanList(Caller{AccountID: "a1", Role: models.RoleAdmin}))
	assert.False(t, CanList(Caller{AccountID: "u1", Role: models.RoleUser}))
	assert.False(t, CanList(Caller{AccountID: "x1", Role: models.Role("owner")}))
}

func TestCanCreate(t *testing.T) {
	t.Parallel()

	assert.True(t, CanCreate(models.RoleUser))
	assert.False(t, CanCreate(models.RoleAdmin), "self-service admin creation must be refused")
	assert.False(t, CanCreate(models.Role("moderator")))
}
