package naming

import (
	"testing"

	"pgregory.net/rapid"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"Login", "login"},
		{"RegisterUserAsync", "registeruserasync"},
		{"Get-User By Id!", "getuserbyid"},
		{"Login_ShouldReturnTrue", "login_shouldreturntrue"},
		{"Créer", "crer"},
		{"Method(System.String, Int32)", "methodsystemstringint32"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "s")
		once := Normalize(s)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize(Normalize(%q)) = %q, want %q", s, twice, once)
		}
	})
}

func TestStripParameterList(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Login", "Login"},
		{"Login()", "Login"},
		{"Login(System.String,System.Int32)", "Login"},
		{"Tests.Auth.Login(email: \"a@b.c\")", "Tests.Auth.Login"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripParameterList(tt.in); got != tt.want {
			t.Errorf("StripParameterList(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestShortClass(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"BlindTreasure.UnitTest.Services.AuthServiceTests", "AuthServiceTests"},
		{"AuthServiceTests", "AuthServiceTests"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ShortClass(tt.in); got != tt.want {
			t.Errorf("ShortClass(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBaseFunctionName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Login_ShouldReturnTrue_WhenValid", "Login"},
		{"RegisterUserAsync_WhenEmailExists_ShouldThrow", "RegisterUserAsync"},
		{"ResetPassword_WhenTokenExpired", "ResetPassword"},
		{"ResetPassword", "ResetPassword"},
		{"ResetPassword(System.String)", "ResetPassword"},
		{"Login_ShouldReturnTrue(user: \"x_When\")", "Login"},
		{"_ShouldNotHappen", "_ShouldNotHappen"},
	}
	for _, tt := range tests {
		if got := BaseFunctionName(tt.in); got != tt.want {
			t.Errorf("BaseFunctionName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitter_CustomMarkers(t *testing.T) {
	s := Splitter{Markers: []string{"_Given", "_Then"}}
	if got := s.BaseFunctionName("Checkout_GivenEmptyCart_ThenFails"); got != "Checkout" {
		t.Errorf("BaseFunctionName = %q, want Checkout", got)
	}
	// Default markers no longer apply.
	if got := s.BaseFunctionName("Login_ShouldReturnTrue"); got != "Login_ShouldReturnTrue" {
		t.Errorf("BaseFunctionName = %q, want whole name", got)
	}
}

func TestSplitter_BaseIsPrefix(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringMatching(`[A-Za-z_]{0,30}`).Draw(t, "name")
		base := BaseFunctionName(name)
		if len(base) > len(name) || name[:len(base)] != base {
			t.Fatalf("BaseFunctionName(%q) = %q is not a prefix", name, base)
		}
	})
}
