package pdfrender

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// PrescriptionData feeds the prescription template.
type PrescriptionData struct {
	PractitionerName string
	Specialty        string
	LicenseNumber    string
	PatientName      string
	PatientAge       int
	Body             string
	IssuedAt         time.Time
}

// ConsultationLine is one logged AI interaction in the consolidated report.
type ConsultationLine struct {
	Timestamp time.Time
	Query     string
	Response  string
	Sources   []string
	Urgent    bool
}

// PatientReportData feeds the consolidated patient report template.
type PatientReportData struct {
	PractitionerName string
	PatientName      string
	PatientID        string
	Age              int
	Sex              string
	History          string
	Allergies        []string
	Consultations    []ConsultationLine
	GeneratedAt      time.Time
}

var templateFuncs = template.FuncMap{
	"frdate": func(t time.Time) string {
		return t.Format("02/01/2006")
	},
	"frdatetime": func(t time.Time) string {
		return t.Format("02/01/2006 15:04")
	},
}

var prescriptionTemplate = template.Must(template.New("prescription").Funcs(templateFuncs).Parse(`<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<style>
body { font-family: Georgia, serif; margin: 48px; color: #1a1a1a; }
header { border-bottom: 2px solid #1a1a1a; padding-bottom: 12px; margin-bottom: 24px; }
h1 { font-size: 22px; margin: 0 0 4px 0; }
.meta { font-size: 12px; color: #555; }
.body { white-space: pre-wrap; font-size: 14px; line-height: 1.6; margin: 24px 0; }
footer { margin-top: 48px; font-size: 12px; text-align: right; }
</style>
</head>
<body>
<header>
<h1>Ordonnance</h1>
<div class="meta">{{.PractitionerName}} — {{.Specialty}}<br>N° RPPS : {{.LicenseNumber}}</div>
</header>
<p>Patient : <strong>{{.PatientName}}</strong>{{if .PatientAge}} ({{.PatientAge}} ans){{end}}</p>
<div class="body">{{.Body}}</div>
<footer>Fait le {{frdate .IssuedAt}}<br>Signature : {{.PractitionerName}}</footer>
</body>
</html>`))

var patientReportTemplate = template.Must(template.New("report").Funcs(templateFuncs).Parse(`<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<style>
body { font-family: Georgia, serif; margin: 48px; color: #1a1a1a; }
h1 { font-size: 22px; border-bottom: 2px solid #1a1a1a; padding-bottom: 8px; }
h2 { font-size: 16px; margin-top: 28px; }
.meta { font-size: 12px; color: #555; }
.entry { border: 1px solid #ccc; border-radius: 4px; padding: 12px; margin: 12px 0; page-break-inside: avoid; }
.entry .ts { font-size: 11px; color: #555; }
.urgent { color: #b00020; font-weight: bold; }
.response { white-space: pre-wrap; font-size: 13px; line-height: 1.5; }
.sources { font-size: 11px; color: #555; margin-top: 8px; }
</style>
</head>
<body>
<h1>Dossier patient — {{.PatientName}}</h1>
<p class="meta">Identifiant : {{.PatientID}} — {{.Age}} ans — {{.Sex}}<br>
Édité par {{.PractitionerName}} le {{frdatetime .GeneratedAt}}</p>
<h2>Antécédents</h2>
<p>{{if .History}}{{.History}}{{else}}Aucun antécédent renseigné.{{end}}</p>
<h2>Allergies</h2>
{{if .Allergies}}<ul>{{range .Allergies}}<li>{{.}}</li>{{end}}</ul>{{else}}<p>Aucune allergie connue.</p>{{end}}
<h2>Consultations assistées</h2>
{{if not .Consultations}}<p>Aucune consultation enregistrée.</p>{{end}}
{{range .Consultations}}
<div class="entry">
<div class="ts">{{frdatetime .Timestamp}}{{if .Urgent}} — <span class="urgent">URGENT</span>{{end}}</div>
<p><em>{{.Query}}</em></p>
<div class="response">{{.Response}}</div>
{{if .Sources}}<div class="sources">Sources : {{range $i, $s := .Sources}}{{if $i}}, {{end}}{{$s}}{{end}}</div>{{end}}
</div>
{{end}}
</body>
</html>`))

// RenderPrescriptionHTML fills the prescription template.
func RenderPrescriptionHTML(data PrescriptionData) (string, error) {
	var buf bytes.Buffer
	if err := prescriptionTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prescription template: %w", err)
	}
	return buf.String(), nil
}

// RenderPatientReportHTML fills the consolidated report template.
func RenderPatientReportHTML(data PatientReportData) (string, error) {
	var buf bytes.Buffer
	if err := patientReportTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render report template: %w", err)
	}
	return buf.String(), nil
}
