package model

// DefaultStatuses returns the vocabulary every new user starts with.
// The order is fixed — it is what the UI shows for a fresh account.
func DefaultStatuses() StatusVocabulary {
	return StatusVocabulary{"Hecho", "No hecho", "En proceso", "En revisión"}
}

// StatusVocabulary is an ordered set of unique status names owned by a user.
// Insertion order is preserved for display numbering. Membership is exact
// string equality: no trimming, no case folding. "hecho" and "Hecho" are
// different entries as far as this type is concerned.
//
// The type is a named slice so it serializes as a plain JSON array, both in
// API payloads and in the users table snapshot column.
type StatusVocabulary []string

// Add appends name to the vocabulary. It returns false and leaves the
// vocabulary unchanged when an exact match is already present.
// Blank or whitespace-only names are a caller concern — Add accepts any string.
func (v *StatusVocabulary) Add(name string) bool {
	if v.Contains(name) {
		return false
	}
	*v = append(*v, name)
	return true
}

// Remove deletes name from the vocabulary. It returns false when name is
// absent, or when removing it would leave the vocabulary empty — a user must
// always keep at least one status.
func (v *StatusVocabulary) Remove(name string) bool {
	if len(*v) <= 1 {
		return false
	}
	for i, s := range *v {
		if s == name {
			*v = append((*v)[:i:i], (*v)[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether name is an exact-match member of the vocabulary.
func (v StatusVocabulary) Contains(name string) bool {
	for _, s := range v {
		if s == name {
			return true
		}
	}
	return false
}

// List returns the entries in insertion order. The result is a copy — callers
// can't mutate the vocabulary through it.
func (v StatusVocabulary) List() []string {
	out := make([]string, len(v))
	copy(out, v)
	return out
}
