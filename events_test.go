// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package aslan_test

import (
	"testing"

	"github.com/creachadair/aslan"
	"github.com/creachadair/aslan/ast"
	"github.com/creachadair/aslan/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

func TestEvents(t *testing.T) {
	tests := []struct {
		name  string
		cfg   aslan.Config
		input string
		want  []string
	}{
		{"NoInstructions", aslan.Config{}, "[asland_a]x[asland_b]y", []string{
			`end_data a [0:"x"]`,
			`end_data b [0:"y"]`,
		}},
		{"Scalar", aslan.Config{}, "[asland_a][aslani_bold]x[asland_b]y", []string{
			`content a bold 0 ""`,
			`content a bold 0 "x"`,
			`end a bold 0 "x"`,
			`end_data a [0:"x" bold]`,
			`end_data b [0:"y"]`,
		}},
		{"Stacked", aslan.Config{}, "[asland_a][aslani_bold][aslani_color:red]x", []string{
			`content a bold 0 ""`,
			`content a bold 0 ""`,
			`content a color 0 ""`,
			`content a bold 0 "x"`,
			`content a color 0 "x"`,
			`end a bold 0 "x"`,
			`end a color 0 "x"`,
			`end_data a [0:"x" bold color]`,
		}},
		{"Parts", aslan.Config{}, "[asland_t][aslanp][aslani_bold]AB[aslanp][aslani_it]CD", []string{
			`content t bold 0 ""`,
			`content t bold 0 "AB"`,
			`end t bold 0 "AB"`,
			`content t it 1 ""`,
			`content t it 1 "CD"`,
			`end t it 1 "CD"`,
			`end_data t [0:"AB" bold, 1:"CD" it]`,
		}},
		{"Nested", aslan.Config{}, "[asland_a][aslano][asland_b][aslani_x:1:2]hi[aslano]", []string{
			`content a.b x 0 ""`,
			`content a.b x 0 "hi"`,
			`end a.b x 0 "hi"`,
			`end_data a.b [0:"hi" x]`,
		}},
		{"ArrayPath", aslan.Config{}, "[asland_a][aslana][asland][aslani_m]p[asland]q", []string{
			`content a.0 m 0 ""`,
			`content a.0 m 0 "p"`,
			`end a.0 m 0 "p"`,
			`end_data a.0 [0:"p" m]`,
			`end_data a.1 [0:"q"]`,
		}},
		{"KeepLast", aslan.Config{}, "[asland_t:l][aslani_a]x[asland_t][aslani_b]y", []string{
			`content t a 0 ""`,
			`content t a 0 "x"`,
			`end t a 0 "x"`,
			`end_data t [0:"x" a]`,
			`content t b 0 ""`,
			`content t b 0 "y"`,
			`end t b 0 "y"`,
			`end_data t [0:"y" b]`,
		}},
		{"KeepFirst", aslan.Config{}, "[asland_t:f][aslani_a]x[asland_t][aslani_b]y", []string{
			`content t a 0 ""`,
			`content t a 0 "x"`,
			`end t a 0 "x"`,
			`end_data t [0:"x" a]`,
			`end t a 0 "x"`,
			`end_data t [0:"x" a]`,
		}},
		{"Void", aslan.Config{}, "[asland_a][aslani_m]x[aslanv]", []string{
			`content a m 0 ""`,
			`content a m 0 "x"`,
			`end_data a [0:null m]`,
		}},
		{"NoContent", aslan.Config{NoContentEvents: true}, "[asland_a][aslani_m]x", []string{
			`end a m 0 "x"`,
			`end_data a [0:"x" m]`,
		}},
		{"NoEnd", aslan.Config{NoEndEvents: true, NoEndDataEvents: true}, "[asland_a][aslani_m]x", []string{
			`content a m 0 ""`,
			`content a m 0 "x"`,
		}},
		{"StrictEnd", aslan.Config{StrictEnd: true}, "[asland_a]x[aslans][asland_b]y", []string{
			`end_data a [0:"x"]`,
			`end_data b [0:"y"]`,
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := aslan.New(tc.cfg)
			var rec testutil.Recorder
			rec.Listen(p)
			p.ParseOne(tc.input)
			if diff := cmp.Diff(tc.want, rec.Summary()); diff != "" {
				t.Errorf("Events for %q (-want, +got):\n%s", tc.input, diff)
			}
		})
	}
}

func TestEventDetails(t *testing.T) {
	p := aslan.New(aslan.Config{MultiDocument: true, StrictEnd: true})
	var rec testutil.Recorder
	rec.Listen(p, aslan.TagEnd)
	p.ParseNext("[aslans][asland_x]abc[aslani_link:https:example]def")
	p.Close()

	if len(rec.Events) != 1 {
		t.Fatalf("Got %d events, want 1", len(rec.Events))
	}
	ev := rec.Events[0]
	want := aslan.Event{
		Tag:         aslan.TagEnd,
		Content:     "abcdef",
		Field:       aslan.NameKey("x"),
		Path:        []string{"x"},
		Structure:   p.Result(),
		Document:    1,
		Instruction: "link",
		Args:        []string{"https", "example"},
		Index:       3,
	}
	if diff := cmp.Diff(want, ev, cmp.AllowUnexported(aslan.Key{})); diff != "" {
		t.Errorf("End event (-want, +got):\n%s", diff)
	}
	if ev.Structure != p.Result() {
		t.Error("Event structure is not the document root")
	}
}

func TestEventSnapshot(t *testing.T) {
	// The structure is live; consumers copy it to retain a snapshot.
	p := aslan.New(aslan.Config{})
	var snaps []ast.Value
	p.AddListener(aslan.TagContent, func(ev aslan.Event) {
		snaps = append(snaps, ast.Copy(ev.Structure))
	})
	p.ParseNext("[asland_a][aslani_m]")
	p.ParseNext("x")
	p.ParseNext("y")
	p.Close()

	want := []ast.Value{
		Obj("_default", nil),
		Obj("_default", nil, "a", "x"),
		Obj("_default", nil, "a", "xy"),
	}
	if diff := cmp.Diff(want, snaps); diff != "" {
		t.Errorf("Snapshots (-want, +got):\n%s", diff)
	}
}

func TestListeners(t *testing.T) {
	p := aslan.New(aslan.Config{})
	var log []string
	add := func(label string) aslan.Listener {
		return func(ev aslan.Event) { log = append(log, label+":"+ev.Tag.String()) }
	}

	if !p.AddListenerWithKey("k1", aslan.TagEndData, add("k1")) {
		t.Error("AddListenerWithKey k1: got false, want true")
	}
	if p.AddListenerWithKey("k1", aslan.TagEndData, add("dup")) {
		t.Error("AddListenerWithKey k1 again: got true, want false")
	}
	k2 := p.AddListener(aslan.TagEndData, add("k2"))
	k3 := p.AddListener(aslan.TagEndData, add("k3"))
	if k2 == "" || k2 == k3 {
		t.Errorf("AddListener keys: got %q, %q; want distinct non-empty", k2, k3)
	}

	p.ParseNext("[asland_a]x[asland_b]")
	if diff := cmp.Diff([]string{"k1:end_data", "k2:end_data", "k3:end_data"}, log); diff != "" {
		t.Errorf("Listeners (-want, +got):\n%s", diff)
	}

	if !p.RemoveListener(k2) {
		t.Errorf("RemoveListener %q: got false, want true", k2)
	}
	if p.RemoveListener(k2) {
		t.Errorf("RemoveListener %q again: got true, want false", k2)
	}
	log = nil
	p.ParseNext("y[asland_c]")
	if diff := cmp.Diff([]string{"k1:end_data", "k3:end_data"}, log); diff != "" {
		t.Errorf("Listeners after remove (-want, +got):\n%s", diff)
	}

	p.ClearListeners()
	log = nil
	p.ParseNext("z")
	p.Close()
	if len(log) != 0 {
		t.Errorf("Listeners after clear: got %q, want none", log)
	}
	if !p.AddListenerWithKey("k1", aslan.TagEnd, add("k1")) {
		t.Error("AddListenerWithKey k1 after clear: got false, want true")
	}
}

func TestTags(t *testing.T) {
	for _, tag := range []aslan.Tag{aslan.TagContent, aslan.TagEnd, aslan.TagEndData} {
		got, err := aslan.ParseTag(tag.String())
		if err != nil || got != tag {
			t.Errorf("ParseTag(%q): got %v, %v; want %v", tag.String(), got, err, tag)
		}
	}
	if got, err := aslan.ParseTag("bogus"); err == nil {
		t.Errorf("ParseTag(bogus): got %v, want error", got)
	}
}
