package poll

// firstRegionalIndicator is REGIONAL INDICATOR SYMBOL LETTER A.
const firstRegionalIndicator = 0x1F1E6

// MaxGames is the number of distinct icons a poll can hand out.
const MaxGames = 26

var icons = func() []string {
	out := make([]string, MaxGames)
	for i := range out {
		out[i] = string(rune(firstRegionalIndicator + i))
	}
	return out
}()

// Icons returns the icon alphabet in allocation order.
func Icons() []string {
	out := make([]string, len(icons))
	copy(out, icons)
	return out
}

// AllocateIcon returns the first icon, A to Z, that is not in used.
// Returns ErrTooManyOptions once all of them are taken.
func AllocateIcon(used map[string]struct{}) (string, error) {
	for _, icon := range icons {
		if _, taken := used[icon]; !taken {
			return icon, nil
		}
	}
	return "", ErrTooManyOptions
}
