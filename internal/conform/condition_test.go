package conform

import "testing"

func TestParseConditionEquality(t *testing.T) {
	cond, err := parseCondition("roadseg", "pavstatus", "{field} == 'Y'")
	if err != nil {
		t.Fatalf("parseCondition: %v", err)
	}
	if !cond.eval("Y") {
		t.Errorf("expected \"Y\" to satisfy equality condition")
	}
	if cond.eval("N") {
		t.Errorf("expected \"N\" to fail equality condition")
	}
}

func TestParseConditionModulo(t *testing.T) {
	cond, err := parseCondition("roadseg", "exitnbr", "{field} % 2 == 0")
	if err != nil {
		t.Fatalf("parseCondition: %v", err)
	}
	if !cond.eval(4.0) {
		t.Errorf("expected 4 to be even")
	}
	if cond.eval(3.0) {
		t.Errorf("expected 3 to not be even")
	}
}

func TestParseConditionAndOr(t *testing.T) {
	cond, err := parseCondition("roadseg", "speed", "{field} >= 50 and {field} <= 100")
	if err != nil {
		t.Fatalf("parseCondition: %v", err)
	}
	if !cond.eval(75.0) {
		t.Errorf("expected 75 within range")
	}
	if cond.eval(10.0) {
		t.Errorf("expected 10 out of range")
	}

	cond, err = parseCondition("roadseg", "speed", "{field} < 10 or {field} > 100")
	if err != nil {
		t.Fatalf("parseCondition: %v", err)
	}
	if !cond.eval(5.0) {
		t.Errorf("expected 5 to satisfy disjunction")
	}
	if cond.eval(50.0) {
		t.Errorf("expected 50 to fail disjunction")
	}
}

func TestParseConditionNegation(t *testing.T) {
	cond, err := parseCondition("strplaname", "placename", "not {field}")
	if err != nil {
		t.Fatalf("parseCondition: %v", err)
	}
	if cond.eval("Somewhere") {
		t.Errorf("expected non-empty field to fail \"not\" truthiness check")
	}
	if !cond.eval("") {
		t.Errorf("expected empty field to satisfy \"not\" truthiness check")
	}
}

func TestParseConditionInvalid(t *testing.T) {
	_, err := parseCondition("roadseg", "speed", "{field} %")
	if err == nil {
		t.Fatalf("expected an error for a malformed modulo term")
	}
	if _, ok := err.(*ErrInvalidCondition); !ok {
		t.Errorf("expected ErrInvalidCondition, got %T", err)
	}
}
