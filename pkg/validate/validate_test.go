package validate_test

import (
	"testing"

	"github.com/shashiranjanraj/automart/pkg/validate"
)

type registerInput struct {
	Username             string `json:"username"              validate:"required,alpha_dash,min=3,max=32"`
	Email                string `json:"email"                 validate:"required,email"`
	Password             string `json:"password"              validate:"required,min=8,confirmed"`
	PasswordConfirmation string `json:"password_confirmation"`
	Age                  *uint8 `json:"age"                   validate:"nullable,gte=15,lte=80"`
}

func ptr[T any](v T) *T { return &v }

func TestValidInput(t *testing.T) {
	errs := validate.Struct(registerInput{
		Username:             "jane_doe",
		Email:                "jane@example.com",
		Password:             "secret123",
		PasswordConfirmation: "secret123",
		Age:                  ptr(uint8(30)),
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(&registerInput{})
	for _, f := range []string{"username", "email", "password"} {
		if _, ok := errs[f]; !ok {
			t.Errorf("expected %s to be required", f)
		}
	}
	if _, ok := errs["age"]; ok {
		t.Error("nil nullable pointer must pass")
	}
}

func TestPointerBounds(t *testing.T) {
	in := registerInput{Username: "joe", Email: "j@example.com", Password: "secret123", PasswordConfirmation: "secret123"}

	in.Age = ptr(uint8(14))
	if _, ok := validate.Struct(in)["age"]; !ok {
		t.Error("expected age 14 to fail")
	}
	in.Age = ptr(uint8(81))
	if _, ok := validate.Struct(in)["age"]; !ok {
		t.Error("expected age 81 to fail")
	}
	in.Age = ptr(uint8(15))
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		t.Errorf("expected age 15 to pass: %v", errs)
	}
}

func TestConfirmedRule(t *testing.T) {
	in := registerInput{Username: "joe", Email: "j@example.com", Password: "secret123", PasswordConfirmation: "other"}
	if _, ok := validate.Struct(in)["password"]; !ok {
		t.Error("expected confirmation mismatch to fail")
	}
}

func TestInRuleWithFollowingRules(t *testing.T) {
	type in struct {
		Body string `json:"body" validate:"required,in=any,sedan,suv,max=5"`
	}
	if errs := validate.Struct(in{Body: "sedan"}); validate.HasErrors(errs) {
		t.Errorf("expected sedan to pass: %v", errs)
	}
	if errs := validate.Struct(in{Body: "tank"}); !validate.HasErrors(errs) {
		t.Error("expected tank to fail")
	}
}

func TestSliceRules(t *testing.T) {
	type in struct {
		Fuel []string `json:"fuel" validate:"required,min=1,max=2,unique,in=any,petrol,diesel,hybrid"`
	}

	cases := []struct {
		fuel []string
		ok   bool
	}{
		{[]string{"petrol"}, true},
		{[]string{"petrol", "hybrid"}, true},
		{[]string{}, false},
		{[]string{"petrol", "diesel", "hybrid"}, false},
		{[]string{"petrol", "petrol"}, false},
		{[]string{"coal"}, false},
	}
	for _, c := range cases {
		errs := validate.Struct(in{Fuel: c.fuel})
		if c.ok == validate.HasErrors(errs) {
			t.Errorf("fuel %v: ok=%v, errs=%v", c.fuel, c.ok, errs)
		}
	}
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Location string `json:"location" validate:"nullable,min=2"`
	}
	if errs := validate.Struct(in{}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable to pass: %v", errs)
	}
	if errs := validate.Struct(in{Location: "x"}); !validate.HasErrors(errs) {
		t.Error("expected short location to fail")
	}
}

func TestBetweenRule(t *testing.T) {
	type in struct {
		Stars int `json:"stars" validate:"required,between=1,5"`
	}
	if errs := validate.Struct(in{Stars: 6}); !validate.HasErrors(errs) {
		t.Error("expected 6 stars to fail")
	}
	if errs := validate.Struct(in{Stars: 5}); validate.HasErrors(errs) {
		t.Errorf("expected 5 stars to pass: %v", errs)
	}
}
