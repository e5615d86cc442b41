package gamedata

// FrameCount returns the frame count of the first tag called name.
// Tags from later sprite sheets with the same name are never returned.
func FrameCount(name string) (int, bool) {
	tag := Animation(name)
	if tag == nil {
		return 0, false
	}
	return tag.Frames, true
}

// Animation returns the first tag called name, or nil if not found.
func Animation(name string) *AnimationTag {
	for i := range AnimationFrames {
		if AnimationFrames[i].Name == name {
			return &AnimationFrames[i]
		}
	}
	return nil
}

// AnimationNames returns the tag names in table order, duplicates included.
func AnimationNames() []string {
	names := make([]string, len(AnimationFrames))
	for i, tag := range AnimationFrames {
		names[i] = tag.Name
	}
	return names
}
