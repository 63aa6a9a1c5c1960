// Package keywords maps natural-language animation requests to concrete
// Mixamo search terms using a static synonym table.
package keywords

import (
	"sort"
	"strings"
)

// Category groups canonical keywords for catalog listing.
type Category string

const (
	CategoryLocomotion Category = "locomotion"
	CategoryCombat     Category = "combat"
	CategorySocial     Category = "social"
	CategoryDance      Category = "dance"
	CategorySports     Category = "sports"
	CategoryMisc       Category = "misc"
)

// mappings is the canonical tag to synonym search-string table. Read-only
// after process start.
var mappings = map[string][]string{
	// Locomotion
	"idle":   {"idle", "breathing idle", "standing idle", "happy idle"},
	"walk":   {"walking", "walk", "strut walk", "sneaking"},
	"run":    {"running", "run", "jog", "sprint", "fast run"},
	"jump":   {"jump", "jumping", "hop", "leap", "running jump"},
	"crouch": {"crouch", "crouching", "sneaking", "stealth"},
	"crawl":  {"crawl", "crawling", "prone"},
	"climb":  {"climb", "climbing", "ladder climb"},
	"swim":   {"swim", "swimming", "treading water"},
	"fall":   {"falling", "fall", "falling idle"},
	"land":   {"landing", "land", "hard landing"},
	"slide":  {"slide", "sliding", "baseball slide"},
	"roll":   {"roll", "rolling", "combat roll", "dive roll"},
	"strafe": {"strafe", "strafing", "side step"},
	"turn":   {"turn", "turning", "turn around", "180 turn"},
	// Combat
	"attack":    {"attack", "slash", "strike", "hit"},
	"punch":     {"punch", "punching", "jab", "hook", "uppercut", "cross punch"},
	"kick":      {"kick", "kicking", "roundhouse", "front kick", "side kick"},
	"sword":     {"sword", "sword slash", "sword attack", "great sword"},
	"block":     {"block", "blocking", "shield block", "parry"},
	"dodge":     {"dodge", "dodging", "evade", "sidestep"},
	"shoot":     {"shoot", "shooting", "rifle", "pistol", "aim"},
	"reload":    {"reload", "reloading", "magazine"},
	"throw":     {"throw", "throwing", "grenade throw"},
	"hit":       {"hit reaction", "take damage", "get hit", "impact"},
	"death":     {"death", "dying", "die", "killed"},
	"knockdown": {"knockdown", "knocked down", "fall back"},
	// Social / emotes
	"wave":       {"wave", "waving", "greeting", "hello"},
	"bow":        {"bow", "bowing", "respect"},
	"clap":       {"clap", "clapping", "applause"},
	"cheer":      {"cheer", "cheering", "celebration", "victory"},
	"laugh":      {"laugh", "laughing", "lol"},
	"cry":        {"cry", "crying", "sad", "sobbing"},
	"angry":      {"angry", "rage", "frustrated"},
	"shrug":      {"shrug", "confused", "I don't know"},
	"point":      {"point", "pointing", "gesture"},
	"talk":       {"talk", "talking", "conversation", "arguing"},
	"sit":        {"sit", "sitting", "sit down", "seated"},
	"sleep":      {"sleep", "sleeping", "lay down"},
	"pray":       {"pray", "praying", "kneel"},
	"salute":     {"salute", "military salute"},
	"taunt":      {"taunt", "taunting", "provoke"},
	"think":      {"think", "thinking", "pondering"},
	"nod":        {"nod", "nodding", "yes"},
	"shake head": {"shake head", "no", "disagree"},
	// Dance
	"dance":      {"dance", "dancing", "groove"},
	"hip hop":    {"hip hop", "hip hop dance", "breakdance"},
	"salsa":      {"salsa", "salsa dancing", "latin dance"},
	"ballet":     {"ballet", "pirouette", "ballet dance"},
	"robot":      {"robot", "robot dance", "robotic"},
	"macarena":   {"macarena"},
	"twerk":      {"twerk", "twerking"},
	"moonwalk":   {"moonwalk"},
	"breakdance": {"breakdance", "breaking", "b-boy"},
	"shuffle":    {"shuffle", "shuffling"},
	// Sports
	"baseball":     {"baseball", "batting", "pitching", "catching"},
	"basketball":   {"basketball", "dribble", "shoot ball", "dunk"},
	"soccer":       {"soccer", "football", "kick ball", "header"},
	"golf":         {"golf", "golf swing", "putting"},
	"tennis":       {"tennis", "forehand", "backhand", "serve"},
	"boxing":       {"boxing", "boxer", "fighting stance"},
	"martial arts": {"martial arts", "karate", "kung fu", "taekwondo"},
	// Misc / utility
	"pickup": {"pickup", "pick up", "grab", "collect"},
	"use":    {"use", "interact", "activate", "press button"},
	"push":   {"push", "pushing", "shove"},
	"pull":   {"pull", "pulling", "drag"},
	"carry":  {"carry", "carrying", "hold"},
	"drink":  {"drink", "drinking"},
	"eat":    {"eat", "eating"},
	"phone":  {"phone", "cellphone", "texting"},
	"type":   {"type", "typing", "keyboard"},
	"look":   {"look", "looking", "look around"},
}

var categories = map[string]Category{
	"idle": CategoryLocomotion, "walk": CategoryLocomotion, "run": CategoryLocomotion,
	"jump": CategoryLocomotion, "crouch": CategoryLocomotion, "crawl": CategoryLocomotion,
	"climb": CategoryLocomotion, "swim": CategoryLocomotion, "fall": CategoryLocomotion,
	"land": CategoryLocomotion, "slide": CategoryLocomotion, "roll": CategoryLocomotion,
	"strafe": CategoryLocomotion, "turn": CategoryLocomotion,

	"attack": CategoryCombat, "punch": CategoryCombat, "kick": CategoryCombat,
	"sword": CategoryCombat, "block": CategoryCombat, "dodge": CategoryCombat,
	"shoot": CategoryCombat, "reload": CategoryCombat, "throw": CategoryCombat,
	"hit": CategoryCombat, "death": CategoryCombat, "knockdown": CategoryCombat,

	"wave": CategorySocial, "bow": CategorySocial, "clap": CategorySocial,
	"cheer": CategorySocial, "laugh": CategorySocial, "cry": CategorySocial,
	"angry": CategorySocial, "shrug": CategorySocial, "point": CategorySocial,
	"talk": CategorySocial, "sit": CategorySocial, "sleep": CategorySocial,
	"pray": CategorySocial, "salute": CategorySocial, "taunt": CategorySocial,
	"think": CategorySocial, "nod": CategorySocial, "shake head": CategorySocial,

	"dance": CategoryDance, "hip hop": CategoryDance, "salsa": CategoryDance,
	"ballet": CategoryDance, "robot": CategoryDance, "macarena": CategoryDance,
	"twerk": CategoryDance, "moonwalk": CategoryDance, "breakdance": CategoryDance,
	"shuffle": CategoryDance,

	"baseball": CategorySports, "basketball": CategorySports, "soccer": CategorySports,
	"golf": CategorySports, "tennis": CategorySports, "boxing": CategorySports,
	"martial arts": CategorySports,

	"pickup": CategoryMisc, "use": CategoryMisc, "push": CategoryMisc,
	"pull": CategoryMisc, "carry": CategoryMisc, "drink": CategoryMisc,
	"eat": CategoryMisc, "phone": CategoryMisc, "type": CategoryMisc,
	"look": CategoryMisc,
}

// tags holds the canonical tags in sorted order so expansion is
// deterministic across runs.
var tags []string

func init() {
	tags = make([]string, 0, len(mappings))
	for tag := range mappings {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
}

// Expand turns a free-text query into an ordered list of search terms.
// The original query always comes first. Every canonical tag that contains
// the query, or is contained by it, contributes its full synonym list.
// Duplicates are removed keeping the first occurrence. An unknown query
// expands to itself alone.
func Expand(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))

	expanded := []string{q}
	for _, tag := range tags {
		if strings.Contains(tag, q) || strings.Contains(q, tag) {
			expanded = append(expanded, mappings[tag]...)
		}
	}

	seen := make(map[string]bool, len(expanded))
	result := make([]string, 0, len(expanded))
	for _, term := range expanded {
		if seen[term] {
			continue
		}
		seen[term] = true
		result = append(result, term)
	}
	return result
}

// CategoryOf returns the category of a canonical keyword, CategoryMisc for
// anything unknown.
func CategoryOf(keyword string) Category {
	if cat, ok := categories[strings.ToLower(strings.TrimSpace(keyword))]; ok {
		return cat
	}
	return CategoryMisc
}

// Categories lists all categories in display order.
func Categories() []Category {
	return []Category{
		CategoryLocomotion,
		CategoryCombat,
		CategorySocial,
		CategoryDance,
		CategorySports,
		CategoryMisc,
	}
}

// All returns every canonical keyword grouped by category, each group sorted.
func All() map[Category][]string {
	result := make(map[Category][]string, len(categories))
	for _, tag := range tags {
		cat := categories[tag]
		result[cat] = append(result[cat], tag)
	}
	return result
}

// ByCategory filters the grouped catalog to categories whose name contains
// the given filter. An empty filter returns everything.
func ByCategory(filter string) map[Category][]string {
	all := All()
	if filter == "" {
		return all
	}

	f := strings.ToLower(strings.TrimSpace(filter))
	result := make(map[Category][]string)
	for cat, kws := range all {
		if strings.Contains(string(cat), f) {
			result[cat] = kws
		}
	}
	return result
}
