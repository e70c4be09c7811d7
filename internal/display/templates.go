package display

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// templateFuncs provides sprig's utilities plus the game's number and
// timer formatters.
var templateFuncs = func() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["fmtnum"] = FormatNumber
	funcs["fmtms"] = FormatMillis
	return funcs
}()

var panels = template.Must(
	template.New("panels").Funcs(templateFuncs).Parse(panelTemplates),
)

// Render expands the named panel template with the given view.
func Render(name string, view any) (string, error) {
	var buf bytes.Buffer
	if err := panels.ExecuteTemplate(&buf, name, view); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.String(), nil
}

const panelTemplates = `
{{- define "stats" -}}
=== Stats ===
Coins:        {{ fmtnum .Coins }}{{ if .Paused }}  [PAUSED]{{ end }}{{ if .Completed }}  [COMPLETED]{{ end }}
Per click:    {{ fmtnum .CoinsPerClick }}
Per second:   {{ fmtnum .CoinsPerSecond }}
Total clicks: {{ fmtnum .TotalClicks }}
Level:        {{ .Level }} ({{ fmtnum .Experience }}/{{ fmtnum .ExpToNext }} XP)
Season:       {{ .Season }}
Slots:        {{ .UsedSlots }}/{{ .UpgradeSlots }} upgrade slots used
Collection:   {{ .OwnedCollectibles }}/{{ .TotalCollectibles }} this season
{{- end }}

{{- define "upgrades" -}}
=== Upgrades ({{ .UsedSlots }}/{{ .UpgradeSlots }} slots) ===
{{ range .Upgrades -}}
{{ if .Affordable }}*{{ else }} {{ end }} {{ printf "%-18s" .Id }} {{ printf "%8s" (fmtnum .Cost) }} coins  owned {{ .Owned }}{{ if .MaxOwned }}/{{ .MaxOwned }}{{ end }}  - {{ .Description }}
{{ end -}}
Buy with: buy <id>
{{- end }}

{{- define "shop" -}}
=== Season {{ .Season }} Shop ===
{{ range .Collectibles -}}
{{ if .Owned }}x{{ else if .Affordable }}*{{ else }} {{ end }} {{ printf "%-18s" .Id }} {{ printf "%8s" (fmtnum .Cost) }} coins  [{{ .Rarity }}] {{ .Name }}{{ if .Image }} {{ .Image }}{{ end }}
{{ end -}}
Collect with: collect <id>
{{- end }}

{{- define "buffs" -}}
=== Power Buffs ===
{{ range .Buffs -}}
  {{ printf "%-14s" .Id }} {{ printf "%8s" (fmtnum .Cost) }} coins  {{ printf "%-22s" .State }} {{ .Description }}
{{ end -}}
Activate with: buff <id>
{{- end }}

{{- define "journal" -}}
=== Collection Journal ===
{{- if not .Seasons }}
Nothing collected yet.
{{- end }}
{{- range .Seasons }}
Season {{ .Season }}:
{{ range .Collectibles -}}
  [{{ .Rarity }}] {{ .Name }}{{ if .Image }} {{ .Image }}{{ end }} - {{ .Description }}
{{ end -}}
{{- end }}
{{- end }}

{{- define "leaderboard" -}}
=== Global Leaderboard ===
{{- if not .Entries }}
No scores yet. Be the first!
{{- end }}
{{- range .Entries }}
{{ printf "%3d" .Rank }}. {{ printf "%-20s" .Name }} {{ printf "%12s" (fmtnum .Coins) }} coins  level {{ .Level }}
{{- end }}
{{- end }}

{{- define "saves" -}}
=== Cloud Saves ===
{{- if not .Saves }}
No cloud saves yet. Create one with: save <slot>
{{- end }}
{{- range .Saves }}
  {{ printf "%-16s" .Slot }} level {{ .Level }}, {{ fmtnum .Coins }} coins{{ if .AutoSave }}  (autosave){{ end }}  {{ .UpdatedAt }}
{{- end }}
{{- end }}
`
