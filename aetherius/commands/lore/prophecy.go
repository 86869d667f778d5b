package lore

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/guardian-of-arcadia/aetherius/aetherius/config"
	"github.com/guardian-of-arcadia/aetherius/aetherius/utils"
)

var ProphecyCommand = discord.SlashCommandCreate{
	Name:        "prophecy",
	Description: "Receive a mystical prophecy from the Arcane",
}

type prophecy struct {
	omen string
	text string
}

var prophecies = []prophecy{
	{"fortune", "✨ The crystals shimmer with favor... Great fortune awaits those who dare to reach for the stars!"},
	{"challenge", "⚔️ The winds speak of trials ahead... Steel your resolve, for challenges forge legends!"},
	{"mystery", "🌙 The mists part to reveal hidden paths... Secrets long forgotten shall soon surface!"},
	{"unity", "🤝 The Guardians grow stronger together... Unity shall be your greatest weapon!"},
	{"wisdom", "📚 Ancient knowledge stirs in the depths... Seek wisdom in the forgotten archives!"},
	{"adventure", "🗺️ The floating isles call to the brave... Adventure beckons beyond the horizon!"},
	{"power", "⚡ The Arcane flows abundantly today... Your power grows with each passing moment!"},
	{"peace", "🕊️ Tranquility descends upon the realm... A time of peace and reflection is upon us!"},
}

func ProphecyHandler(e *handler.CommandEvent) error {
	return utils.EH.CreateEmbed(e, prophecyEmbed(prophecies[rand.IntN(len(prophecies))], e.User().Username), false)
}

func prophecyEmbed(p prophecy, receiver string) discord.Embed {
	return discord.NewEmbedBuilder().
		SetTitle("🔮 PROPHECY OF THE DAY 🔮").
		SetDescription(p.text).
		SetColor(config.ProphecyColor).
		SetFooter(fmt.Sprintf("Omen Type: %s • Received by %s", strings.ToUpper(p.omen[:1])+p.omen[1:], receiver), "").
		Build()
}
