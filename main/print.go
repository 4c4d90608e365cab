package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/undeconstructed/gomonopoly/game"
)

func printNews(out io.Writer, news []game.Event) {
	for _, e := range news {
		switch e.Kind {
		case game.EventStatus:
			// the prompt shows whose turn it is
		case game.EventWin:
			fmt.Fprintf(out, "*** %s ***\n", e)
		default:
			fmt.Fprintf(out, "%s\n", e)
		}
	}
}

func printPlayers(out io.Writer, g *game.Game) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"", "Player", "Money", "Space", "Jailed", "AI", "Owns"})

	current := g.Current()
	for _, p := range g.Players() {
		mark := ""
		if p == current {
			mark = "»"
		}
		s, _ := g.Board().Space(p.Position)
		t.AppendRow(table.Row{
			mark,
			p.Name,
			p.Money,
			fmt.Sprintf("%d %s", p.Position, s.Name),
			yesNo(p.Jailed),
			yesNo(p.Autonomous),
			len(p.Properties),
		})
	}

	t.SetStyle(table.StyleLight)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})
	t.Render()
}

func printPlayer(out io.Writer, g *game.Game, p *game.Player) {
	s, _ := g.Board().Space(p.Position)

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle(p.Name)
	t.AppendRow(table.Row{"Money", p.Money})
	t.AppendRow(table.Row{"Space", fmt.Sprintf("%d %s", p.Position, s.Name)})
	t.AppendRow(table.Row{"Jailed", yesNo(p.Jailed)})
	t.AppendRow(table.Row{"AI", yesNo(p.Autonomous)})
	t.AppendRow(table.Row{"Owns", strings.Join(p.PropertyNames(g.Board()), ", ")})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func printBoard(out io.Writer, g *game.Game) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle(fmt.Sprintf("%s board", g.Board().Variant()))
	t.AppendHeader(table.Row{"#", "Space", "Kind", "Price", "Rent", "Owner", "Here"})

	here := map[int][]string{}
	for _, p := range g.Players() {
		here[p.Position] = append(here[p.Position], p.Name)
	}

	for _, s := range g.Board().Spaces() {
		price, rent := "", ""
		if s.Purchasable() {
			price = fmt.Sprintf("%d", s.Price)
			rent = fmt.Sprintf("%d", s.Rent)
		}
		t.AppendRow(table.Row{
			s.Position,
			s.Name,
			string(s.Kind),
			price,
			rent,
			s.Owner,
			strings.Join(here[s.Position], ", "),
		})
	}

	t.SetStyle(table.StyleLight)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	t.Render()
}

func printHelp(out io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Command", "Description"})
	for _, c := range commands {
		t.AppendRow(table.Row{c.usage, c.help})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
