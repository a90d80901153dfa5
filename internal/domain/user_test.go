package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/domain"
)

func TestAvatarFromName(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"alice", "A"},
		{"Bob", "B"},
		{"张伟", "张"},
		{"", "?"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, domain.AvatarFromName(tc.name), "name %q", tc.name)
	}
}

func TestDisplayAvatar(t *testing.T) {
	withAvatar := domain.User{Name: "alice", Avatar: "🙂"}
	assert.Equal(t, "🙂", withAvatar.DisplayAvatar())

	withoutAvatar := domain.User{Name: "alice"}
	assert.Equal(t, "A", withoutAvatar.DisplayAvatar())

	empty := domain.User{}
	assert.Equal(t, "?", empty.DisplayAvatar())
}
