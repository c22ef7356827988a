// ABOUTME: Fixed catalog of agent avatars exposed by the API
// ABOUTME: Provides the full list and lookup by ID

package avatars

// Avatar is a selectable agent icon.
type Avatar struct {
	ID    string `json:"id"`
	Emoji string `json:"emoji"`
	Label string `json:"label"`
}

// Catalog is the full set of avatars agents can pick from.
var Catalog = []Avatar{
	{ID: "robot", Emoji: "\U0001F916", Label: "Robot"},
	{ID: "alien", Emoji: "\U0001F47D", Label: "Alien"},
	{ID: "ghost", Emoji: "\U0001F47B", Label: "Ghost"},
	{ID: "wizard", Emoji: "\U0001F9D9", Label: "Wizard"},
	{ID: "astronaut", Emoji: "\U0001F468‍\U0001F680", Label: "Astronaut"},
	{ID: "scientist", Emoji: "\U0001F468‍\U0001F52C", Label: "Scientist"},
	{ID: "detective", Emoji: "\U0001F575️", Label: "Detective"},
	{ID: "ninja", Emoji: "\U0001F977", Label: "Ninja"},
	{ID: "vampire", Emoji: "\U0001F9DB", Label: "Vampire"},
	{ID: "fairy", Emoji: "\U0001F9DA", Label: "Fairy"},
	{ID: "genie", Emoji: "\U0001F9DE", Label: "Genie"},
	{ID: "zombie", Emoji: "\U0001F9DF", Label: "Zombie"},
	{ID: "mermaid", Emoji: "\U0001F9DC", Label: "Mermaid"},
	{ID: "elf", Emoji: "\U0001F9DD", Label: "Elf"},
	{ID: "crystal_ball", Emoji: "\U0001F52E", Label: "Crystal Ball"},
	{ID: "fire", Emoji: "\U0001F525", Label: "Fire"},
	{ID: "star", Emoji: "⭐", Label: "Star"},
	{ID: "moon", Emoji: "\U0001F319", Label: "Moon"},
	{ID: "sun", Emoji: "☀️", Label: "Sun"},
	{ID: "comet", Emoji: "☄️", Label: "Comet"},
	{ID: "rocket", Emoji: "\U0001F680", Label: "Rocket"},
	{ID: "ufo", Emoji: "\U0001F6F8", Label: "UFO"},
	{ID: "brain", Emoji: "\U0001F9E0", Label: "Brain"},
	{ID: "cat", Emoji: "\U0001F431", Label: "Cat"},
	{ID: "owl", Emoji: "\U0001F989", Label: "Owl"},
	{ID: "dragon", Emoji: "\U0001F409", Label: "Dragon"},
	{ID: "phoenix", Emoji: "\U0001F426‍\U0001F525", Label: "Phoenix"},
	{ID: "butterfly", Emoji: "\U0001F98B", Label: "Butterfly"},
}

// Lookup returns the avatar with the given ID, or false if unknown.
func Lookup(id string) (Avatar, bool) {
	for _, a := range Catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Avatar{}, false
}
