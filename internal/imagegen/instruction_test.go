package imagegen

import "testing"

func TestBuildInstruction(t *testing.T) {
	got := BuildInstruction("A glass cabin in the forest")
	want := "A photorealistic architectural visualization of A glass cabin in the forest. " +
		"The image should be highly detailed, professional, and showcase the house in the best possible light."
	if got != want {
		t.Fatalf("instruction mismatch:\ngot  %q\nwant %q", got, want)
	}
}
