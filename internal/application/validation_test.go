package application

import (
	"errors"
	"testing"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{
			name:      "valid value",
			fieldName: "query",
			value:     "groups",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "query",
			value:     "",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			fieldName: "query",
			value:     "   ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
			}
		})
	}
}

func TestValidateUCI(t *testing.T) {
	tests := []struct {
		name    string
		uci     string
		wantErr bool
	}{
		{name: "valid", uci: "/math/groups", wantErr: false},
		{name: "empty", uci: "", wantErr: true},
		{name: "relative", uci: "math/groups", wantErr: true},
		{name: "double slash", uci: "/math//groups", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUCI("uci", tt.uci)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateUCI() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) || valErr.Field != "uci" {
					t.Errorf("expected ValidationError on field uci, got %v", err)
				}
			}
		})
	}
}
