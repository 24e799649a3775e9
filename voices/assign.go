// Package voices binds dialogue characters to voice identities from
// the static pool. Assignment is best-effort: it never fails, worst
// case is a duplicated voice within one idea (pool exhausted) or a
// substituted voice for an unrecognized podcast character name. Both
// are logged, not fatal.
package voices

import (
	"log"
	"math/rand"
	"strings"

	"finn-content-pipeline/types"
)

// Assign gives every character of a single idea a voice_id from the
// pool. Candidates are selected by three-tier relaxation: gender+age
// match, then gender only, then the whole pool. Voices already used
// within the same idea are avoided; when every matching voice is
// taken, any unused pool voice is acceptable, and once the pool is
// fully used duplicates are permitted.
//
// The random source is injected so tests can seed it.
func Assign(chars []types.Character, pool []types.Voice, rng *rand.Rand) {
	if len(pool) == 0 {
		log.Println("[voices] ⚠️ empty voice pool — nothing to assign")
		return
	}
	used := make(map[string]bool, len(chars))
	for i := range chars {
		v := pick(chars[i], pool, used, rng)
		if used[v.VoiceID] {
			log.Printf("[voices] ⚠️ pool exhausted — voice %q repeats within idea", v.Name)
		}
		chars[i].VoiceID = v.VoiceID
		used[v.VoiceID] = true
	}
}

func pick(c types.Character, pool []types.Voice, used map[string]bool, rng *rand.Rand) types.Voice {
	gender := strings.ToLower(c.Gender)
	age := strings.ToLower(c.Age)

	var matching []types.Voice
	if age != "" {
		matching = filter(pool, func(v types.Voice) bool {
			return strings.ToLower(v.Gender) == gender && strings.ToLower(v.Age) == age
		})
	}
	if len(matching) == 0 {
		matching = filter(pool, func(v types.Voice) bool {
			return strings.ToLower(v.Gender) == gender
		})
	}
	if len(matching) == 0 {
		matching = pool
	}

	available := filter(matching, func(v types.Voice) bool { return !used[v.VoiceID] })
	if len(available) == 0 {
		// All matching voices taken — any unused voice will do.
		available = filter(pool, func(v types.Voice) bool { return !used[v.VoiceID] })
	}
	if len(available) == 0 {
		// Pool smaller than the character count: duplicates allowed.
		available = pool
	}
	return available[rng.Intn(len(available))]
}

// AssignFromAllowlist binds podcast characters to voices by exact
// case-insensitive name match against the allow-list. A name the
// model invented falls back to a random allowed voice — never one
// from the full pool — so a hallucinated character cannot pull in an
// unapproved voice.
func AssignFromAllowlist(chars []types.Character, allowlist []types.Voice, rng *rand.Rand) {
	if len(allowlist) == 0 {
		log.Println("[voices] ⚠️ empty podcast allow-list — nothing to assign")
		return
	}
	byName := make(map[string]string, len(allowlist))
	for _, v := range allowlist {
		byName[strings.ToLower(v.Name)] = v.VoiceID
	}
	for i := range chars {
		if id, ok := byName[strings.ToLower(chars[i].Name)]; ok {
			chars[i].VoiceID = id
			continue
		}
		log.Printf("[voices] ⚠️ character %q not in allowed podcast voices — assigning random allowed voice", chars[i].Name)
		chars[i].VoiceID = allowlist[rng.Intn(len(allowlist))].VoiceID
	}
}

func filter(pool []types.Voice, keep func(types.Voice) bool) []types.Voice {
	var out []types.Voice
	for _, v := range pool {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
