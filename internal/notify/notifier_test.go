package notify

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"trade_desk/internal/confirm"
)

func TestParseCallbackData(t *testing.T) {
	tests := []struct {
		data string
		verb string
		id   string
		ok   bool
	}{
		{"CONF::abc", verbConfirm, "abc", true},
		{"REJ::abc", verbReject, "abc", true},
		{"CONF::", "", "", false},
		{"DEL::abc", "", "", false},
		{"garbage", "", "", false},
		{"", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			verb, id, ok := parseCallbackData(tt.data)
			if verb != tt.verb || id != tt.id || ok != tt.ok {
				t.Errorf("parseCallbackData(%q) = %q, %q, %t", tt.data, verb, id, ok)
			}
		})
	}
}

func TestConsolePrompt(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"  yes  \n", true},
		{"n\n", false},
		{"\n", false},
		{"sure\n", false},
		{"", false},
		{"y", true},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			c := NewConsole(strings.NewReader(tt.input), &out)
			p := confirm.NewBroker(0).Request("Delete?")

			if err := c.Prompt(context.Background(), p); err != nil {
				t.Fatalf("Prompt: %v", err)
			}
			select {
			case <-p.Done():
			default:
				t.Fatal("prompt left the decision open")
			}
			if p.Accepted() != tt.want {
				t.Errorf("accepted = %t, want %t", p.Accepted(), tt.want)
			}
			if !strings.Contains(out.String(), "Delete?") {
				t.Errorf("question not printed: %q", out.String())
			}
		})
	}
}

func TestConsoleNotifications(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader(""), &out)
	c.Success("saved")
	c.Failure("broken")

	if got := out.String(); !strings.Contains(got, "saved") || !strings.Contains(got, "broken") {
		t.Errorf("output = %q", got)
	}
}

func TestLogDeclines(t *testing.T) {
	p := confirm.NewBroker(0).Request("q")
	if err := NewLog().Prompt(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	if p.Accepted() {
		t.Error("log notifier accepted a prompt")
	}
}

func TestAuto(t *testing.T) {
	a := NewAuto(true)
	p := confirm.NewBroker(0).Request("q")
	_ = a.Prompt(context.Background(), p)
	a.Success("ok")
	a.Failure("bad")

	if !p.Accepted() {
		t.Error("auto(true) declined")
	}
	if len(a.Prompts()) != 1 || a.Successes()[0] != "ok" || a.Failures()[0] != "bad" {
		t.Errorf("recorded: %v %v %v", a.Prompts(), a.Successes(), a.Failures())
	}
}
