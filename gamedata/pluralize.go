package gamedata

// Pluralize renders word's plural form, consulting the registered
// irregular-plurals exception table before falling back to the
// append-an-"s" rule ecs.pluralize already uses for callers with no
// gamedata access. Grounded on spec.md §7.4's supplemented grammar feature
// and data.rs's Data.plurals map.
func (d *Data) Pluralize(word string) string {
	if p, ok := d.Plurals[word]; ok {
		return p
	}
	if word == "" {
		return word
	}
	return word + "s"
}
