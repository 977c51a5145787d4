package report

import (
	"bytes"
	"encoding/json"
	"html/template"
	"io"
	"time"

	"github.com/kamer1337/quantum-storage-system/pkg/health"
	"github.com/kamer1337/quantum-storage-system/pkg/storage"
)

// RunReport bundles everything one run produced for export.
type RunReport struct {
	GeneratedAt   time.Time             `json:"generated_at"`
	Status        storage.Status        `json:"status"`
	Analytics     storage.Analytics     `json:"analytics"`
	Health        health.Report         `json:"health"`
	Files         []storage.TrackedFile `json:"files"`
	Optimizations []string              `json:"optimizations"`
	Multipliers   []float64             `json:"multipliers"`
}

// WriteJSON writes the run report as indented JSON.
func WriteJSON(w io.Writer, rep RunReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// WriteHTML renders the run report as a standalone HTML page.
func WriteHTML(w io.Writer, rep RunReport) error {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, rep); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

var tpl = template.Must(template.New("rep").Parse(`<!doctype html>
<html lang="en"><meta charset="utf-8">
<title>Quantum Storage Report</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Helvetica,Arial,sans-serif;margin:20px}
h1,h2{margin:0 0 8px}
table{border-collapse:collapse;width:100%;font-size:14px}
th,td{border:1px solid #ddd;padding:6px 8px;text-align:right}
th:first-child,td:first-child{text-align:left}
ul{margin:6px 0 14px;padding-left:20px}
.small{color:#555}
.badge{display:inline-block;background:#eef;border:1px solid #ccd;padding:2px 6px;border-radius:6px;margin-right:6px;}
</style>

<h1>Quantum Storage Report</h1>

<p class="small">
Generated: {{.GeneratedAt.Format "2006-01-02 15:04:05"}} &nbsp;|&nbsp;
Files: {{len .Files}} &nbsp;|&nbsp;
Multiplier: x{{printf "%.2f" .Status.Multiplier}} &nbsp;|&nbsp;
Health: <span class="badge">{{.Health.Overall}}</span>
</p>

<h2>Capacity</h2>
<ul>
<li>Physical limit: {{printf "%.2f" .Status.PhysicalLimitGB}} GB</li>
<li>Virtual capacity: {{printf "%.2f" .Status.VirtualCapacityGB}} GB</li>
<li>Virtual used: {{printf "%.2f" .Status.UsedVirtualGB}} GB</li>
<li>Physical used: {{printf "%.2f" .Status.UsedPhysicalGB}} GB</li>
<li>Efficiency: x{{printf "%.2f" .Status.Efficiency}}</li>
<li>Average compression: {{printf "%.1f" .Analytics.AvgCompressionPct}}%</li>
<li>Predicted next multiplier: x{{printf "%.2f" .Analytics.PredictedNextMultiplier}}</li>
<li>Predicted storage efficiency: {{printf "%.1f" .Analytics.PredictedEfficiencyPct}}%</li>
</ul>

{{if .Optimizations}}
<h2>Active optimizations</h2>
<ul>
{{range .Optimizations}}
  <li>{{.}}</li>
{{end}}
</ul>
{{end}}

{{if .Health.Alerts}}
<h2>Alerts</h2>
<ul>
{{range .Health.Alerts}}
  <li><span class="badge">{{.Severity}}</span> {{.Component}}: {{.Message}}</li>
{{end}}
</ul>
{{end}}

{{if .Multipliers}}
<h2>Multiplier trajectory</h2>
<p>
{{range .Multipliers}}<span class="badge">x{{printf "%.2f" .}}</span>{{end}}
</p>
{{end}}

<h2>Files</h2>
<table>
<thead>
<tr>
<th>name</th><th>virtual</th><th>physical</th><th>ratio</th><th>created</th><th>reads</th>
</tr>
</thead>
<tbody>
{{range .Files}}
<tr>
<td style="text-align:left">{{.Name}}</td>
<td>{{.VirtualSize.Humanized}}</td>
<td>{{.PhysicalSize.Humanized}}</td>
<td>{{printf "%.3f" .CompressionRatio}}</td>
<td>{{.CreatedAt.Format "2006-01-02 15:04:05"}}</td>
<td>{{.AccessCount}}</td>
</tr>
{{end}}
</tbody>
</table>
</html>`))
