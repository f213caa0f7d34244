package imagegen

// BuildInstruction wraps a user prompt in the fixed rendering instruction the
// provider is always given. The wording is part of the product's look and
// must not drift.
func BuildInstruction(prompt string) string {
	return "A photorealistic architectural visualization of " + prompt +
		". The image should be highly detailed, professional, and showcase the house in the best possible light."
}
