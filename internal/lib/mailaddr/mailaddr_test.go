package mailaddr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{
			name:  "локальная часть без домена",
			email: "a",
			want:  "a@gmail.com",
		},
		{
			name:  "полный адрес не меняется",
			email: "user@example.com",
			want:  "user@example.com",
		},
		{
			name:  "адрес gmail не дублируется",
			email: "user@gmail.com",
			want:  "user@gmail.com",
		},
		{
			name:  "пустая строка",
			email: "",
			want:  "@gmail.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.email))
		})
	}
}
