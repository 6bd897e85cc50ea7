package profile

import (
	"github.com/abhisek/stocklearn/internal/auth"
	"github.com/abhisek/stocklearn/internal/ui/components"
)

type field int

const (
	fieldName field = iota
	fieldNumber
	fieldEmail
	fieldPassword
	fieldAddress
	fieldWard
	fieldCount
)

var (
	loginFields  = []field{fieldEmail, fieldPassword}
	signupFields = []field{fieldName, fieldNumber, fieldEmail, fieldPassword, fieldAddress, fieldWard}
)

type slotKind int

const (
	slotField slotKind = iota
	slotShowPassword
	slotSubmit
	slotSwitchMode
)

// slot is one focus stop in the form.
type slot struct {
	kind  slotKind
	field field
}

// form holds the login/signup inputs. Values survive switching between
// login and signup.
type form struct {
	signup       bool
	inputs       [fieldCount]components.TextInput
	focus        int
	showPassword bool
}

func newForm() form {
	var f form
	f.inputs[fieldName] = components.NewTextInput("Full Name", "Enter your name", 64)
	f.inputs[fieldNumber] = components.NewTextInput("Phone Number", "Enter phone number", 15)
	f.inputs[fieldNumber].DigitsOnly = true
	f.inputs[fieldEmail] = components.NewTextInput("Email Address", "your@email.com", 128)
	f.inputs[fieldPassword] = components.NewPasswordInput("Password", "Enter password")
	f.inputs[fieldAddress] = components.NewTextInput("Address", "Enter your address", 128)
	f.inputs[fieldWard] = components.NewTextInput("Ward Number", "Select ward (1-32)", 2)
	f.inputs[fieldWard].DigitsOnly = true
	return f
}

func (f *form) fields() []field {
	if f.signup {
		return signupFields
	}
	return loginFields
}

func (f *form) slots() []slot {
	fields := f.fields()
	out := make([]slot, 0, len(fields)+3)
	for _, fl := range fields {
		out = append(out, slot{kind: slotField, field: fl})
	}
	return append(out,
		slot{kind: slotShowPassword},
		slot{kind: slotSubmit},
		slot{kind: slotSwitchMode},
	)
}

func (f *form) current() slot {
	slots := f.slots()
	if f.focus >= len(slots) {
		f.focus = len(slots) - 1
	}
	return slots[f.focus]
}

// focusedInput returns the text input under focus, or nil.
func (f *form) focusedInput() *components.TextInput {
	s := f.current()
	if s.kind != slotField {
		return nil
	}
	return &f.inputs[s.field]
}

// setFocus moves focus to slot i and syncs the text inputs' cursors.
func (f *form) setFocus(i int) {
	n := len(f.slots())
	f.focus = (i%n + n) % n
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	if in := f.focusedInput(); in != nil {
		in.Focus()
	}
}

func (f *form) focusSlot(kind slotKind) {
	for i, s := range f.slots() {
		if s.kind == kind {
			f.setFocus(i)
			return
		}
	}
}

func (f *form) toggleMode() {
	f.signup = !f.signup
	f.setFocus(0)
}

func (f *form) togglePassword() {
	f.showPassword = !f.showPassword
	f.inputs[fieldPassword].SetMasked(!f.showPassword)
}

func (f *form) value(fl field) string {
	return f.inputs[fl].Value()
}

func (f *form) loginRequest() auth.LoginRequest {
	return auth.LoginRequest{
		Email:    f.value(fieldEmail),
		Password: f.value(fieldPassword),
	}
}

func (f *form) signupRequest() auth.SignupRequest {
	return auth.SignupRequest{
		Name:     f.value(fieldName),
		Number:   f.value(fieldNumber),
		Email:    f.value(fieldEmail),
		Password: f.value(fieldPassword),
		Address:  f.value(fieldAddress),
		WardNo:   f.value(fieldWard),
	}
}

// clearSecrets empties the password field.
func (f *form) clearSecrets() {
	f.inputs[fieldPassword].SetValue("")
}
