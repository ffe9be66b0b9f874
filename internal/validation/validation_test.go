package validation

import (
	"errors"
	"testing"
)

func validInput() SignUpInput {
	return SignUpInput{
		Role:     "parent",
		Email:    "parent@example.com",
		FullName: "Pat Example",
		Username: "pat_example",
		Password: "longenough",
	}
}

func TestValidateSignUp(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*SignUpInput)
		wantField string
	}{
		{
			name:   "valid parent payload",
			mutate: func(in *SignUpInput) {},
		},
		{
			name: "valid child payload without email",
			mutate: func(in *SignUpInput) {
				in.Role = "child"
				in.Email = ""
				in.ParentUsername = "pat_example"
			},
		},
		{
			name: "valid admin payload",
			mutate: func(in *SignUpInput) {
				in.Role = "admin"
				in.Email = ""
			},
		},
		{
			name:      "unknown role",
			mutate:    func(in *SignUpInput) { in.Role = "teacher" },
			wantField: "role",
		},
		{
			name:      "malformed email",
			mutate:    func(in *SignUpInput) { in.Email = "not-an-email" },
			wantField: "email",
		},
		{
			name:      "missing full name",
			mutate:    func(in *SignUpInput) { in.FullName = "" },
			wantField: "fullName",
		},
		{
			name:      "short username",
			mutate:    func(in *SignUpInput) { in.Username = "ab" },
			wantField: "username",
		},
		{
			name:      "username with spaces",
			mutate:    func(in *SignUpInput) { in.Username = "pat example" },
			wantField: "username",
		},
		{
			name:      "short password",
			mutate:    func(in *SignUpInput) { in.Password = "short" },
			wantField: "password",
		},
		{
			name:      "malformed parent username",
			mutate:    func(in *SignUpInput) { in.ParentUsername = "p!" },
			wantField: "parentUsername",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			err := ValidateSignUp(in)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("ValidateSignUp() = %v, want nil", err)
				}
				return
			}

			var vErr Error
			if !errors.As(err, &vErr) {
				t.Fatalf("ValidateSignUp() = %v, want validation.Error", err)
			}
			if vErr.Field != tt.wantField {
				t.Errorf("error field = %q, want %q", vErr.Field, tt.wantField)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid", email: "a@b.com"},
		{name: "valid with plus", email: "a+tag@b.co.uk"},
		{name: "empty", email: "", wantErr: true},
		{name: "no domain", email: "a@", wantErr: true},
		{name: "no at", email: "a.b.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}
