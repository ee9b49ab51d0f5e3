// Package teams maps free text found in reports to canonical clubs and guesses which
// two clubs a report is about.
package teams

import "github.com/okian/cambios/internal/domain/model"

// Team is a canonical club and the spellings it goes by.
type Team struct {
	ID      model.TeamID `json:"id" yaml:"id" koanf:"id"`
	Display string       `json:"display" yaml:"display" koanf:"display"`
	Aliases []string     `json:"aliases" yaml:"aliases" koanf:"aliases"`
}

// DefaultCatalog lists the Liga MX Femenil clubs. Order matters: the first team with a
// matching alias wins.
func DefaultCatalog() []Team {
	return []Team{
		{ID: "pumas", Display: "Pumas UNAM", Aliases: []string{"pumas", "unam", "universidad nacional"}},
		{ID: "america", Display: "Club América", Aliases: []string{"america", "aguilas"}},
		{ID: "guadalajara", Display: "Guadalajara", Aliases: []string{"guadalajara", "chivas"}},
		{ID: "tigres", Display: "Tigres UANL", Aliases: []string{"tigres", "uanl", "amazonas"}},
		{ID: "monterrey", Display: "Monterrey", Aliases: []string{"monterrey", "rayadas"}},
		{ID: "cruz-azul", Display: "Cruz Azul", Aliases: []string{"cruz azul", "cementeras"}},
		{ID: "toluca", Display: "Toluca", Aliases: []string{"toluca", "diablas"}},
		{ID: "pachuca", Display: "Pachuca", Aliases: []string{"pachuca", "tuzas"}},
		{ID: "atlas", Display: "Atlas", Aliases: []string{"atlas", "rojinegras"}},
		{ID: "santos", Display: "Santos Laguna", Aliases: []string{"santos laguna", "santos", "guerreras"}},
		{ID: "leon", Display: "León", Aliases: []string{"club leon", "leon", "esmeraldas"}},
		{ID: "tijuana", Display: "Tijuana", Aliases: []string{"tijuana", "xolas", "xolos"}},
		{ID: "juarez", Display: "FC Juárez", Aliases: []string{"juarez", "bravas"}},
		{ID: "necaxa", Display: "Necaxa", Aliases: []string{"necaxa", "centellas"}},
		{ID: "queretaro", Display: "Querétaro", Aliases: []string{"queretaro", "gallos blancos"}},
		{ID: "puebla", Display: "Puebla", Aliases: []string{"puebla", "la franja"}},
		{ID: "mazatlan", Display: "Mazatlán", Aliases: []string{"mazatlan"}},
		{ID: "san-luis", Display: "Atlético San Luis", Aliases: []string{"atletico san luis", "atletico de san luis", "san luis"}},
	}
}
