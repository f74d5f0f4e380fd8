// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/dailybasket/storefront/internal/config"
	"github.com/dailybasket/storefront/internal/domain/session"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// GenerateSessionReport renders a session export as a downloadable PDF.
func (s *Service) GenerateSessionReport(export *session.Export) (*bytes.Buffer, error) {
	data := ReportData{
		AppName:      s.config.App.Name,
		GeneratedAt:  time.Now().Format("January 2, 2006 15:04 MST"),
		Export:       export,
		DurationText: formatDuration(export.SessionInfo.Duration),
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	err = pdfg.Create()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data ReportData) (string, error) {
	tmpl := template.Must(template.New("session-report").Parse(reportTemplate))

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

func formatDuration(seconds int64) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}

// ReportData represents the data passed to the session report template
type ReportData struct {
	AppName      string          `json:"app_name"`
	GeneratedAt  string          `json:"generated_at"`
	DurationText string          `json:"duration_text"`
	Export       *session.Export `json:"export"`
}

// Session report HTML template
const reportTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Session Report {{.Export.SessionInfo.ID}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            color: #333;
        }
        .header {
            display: flex;
            justify-content: space-between;
            margin-bottom: 30px;
            border-bottom: 2px solid #eee;
            padding-bottom: 20px;
        }
        .report-title {
            font-size: 28px;
            font-weight: bold;
            color: #16a34a;
            margin-bottom: 10px;
        }
        .session-details {
            margin-bottom: 30px;
        }
        .session-details table {
            width: 100%;
        }
        .session-details td {
            padding: 5px 0;
            vertical-align: top;
        }
        .session-details .label {
            font-weight: bold;
            width: 150px;
        }
        .section-title {
            font-size: 16px;
            font-weight: bold;
            margin-bottom: 10px;
            color: #374151;
        }
        .activities-table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 30px;
        }
        .activities-table th,
        .activities-table td {
            border: 1px solid #ddd;
            padding: 12px 8px;
            text-align: left;
        }
        .activities-table th {
            background-color: #f8f9fa;
            font-weight: bold;
        }
        .stats {
            float: right;
            width: 300px;
        }
        .stats table {
            width: 100%;
            border-collapse: collapse;
        }
        .stats td {
            padding: 8px;
            border-bottom: 1px solid #eee;
        }
        .stats .label {
            text-align: right;
            font-weight: bold;
        }
        .stats .value {
            text-align: right;
            width: 100px;
        }
        .footer {
            margin-top: 50px;
            padding-top: 20px;
            border-top: 1px solid #eee;
            text-align: center;
            color: #666;
            font-size: 12px;
        }
    </style>
</head>
<body>
    <div class="header">
        <div>
            <h1>{{.AppName}}</h1>
            <p>Shopping Session Report</p>
        </div>
        <div style="text-align: right;">
            <div class="report-title">SESSION REPORT</div>
            <p><strong>Generated:</strong> {{.GeneratedAt}}</p>
        </div>
    </div>

    <div class="session-details">
        <div class="section-title">Session</div>
        <table>
            <tr>
                <td class="label">Session ID:</td>
                <td>{{.Export.SessionInfo.ID}}</td>
            </tr>
            <tr>
                <td class="label">Account:</td>
                <td>{{.Export.SessionInfo.AccountID}}</td>
            </tr>
            <tr>
                <td class="label">Started:</td>
                <td>{{.Export.SessionInfo.StartTime.Format "January 2, 2006 15:04:05"}}</td>
            </tr>
            {{if .Export.SessionInfo.EndTime}}
            <tr>
                <td class="label">Ended:</td>
                <td>{{.Export.SessionInfo.EndTime.Format "January 2, 2006 15:04:05"}}</td>
            </tr>
            {{end}}
            <tr>
                <td class="label">Duration:</td>
                <td>{{.DurationText}}</td>
            </tr>
            {{if .Export.SessionInfo.Device.Platform}}
            <tr>
                <td class="label">Platform:</td>
                <td>{{.Export.SessionInfo.Device.Platform}}</td>
            </tr>
            {{end}}
            {{if .Export.SessionInfo.Location}}
            <tr>
                <td class="label">Location:</td>
                <td>{{.Export.SessionInfo.Location}}</td>
            </tr>
            {{end}}
        </table>
    </div>

    <div class="section-title">Activities</div>
    <table class="activities-table">
        <thead>
            <tr>
                <th>Time</th>
                <th>Action</th>
                <th>Page</th>
                <th>Details</th>
            </tr>
        </thead>
        <tbody>
            {{range .Export.Activities}}
            <tr>
                <td>{{.Timestamp.Format "15:04:05"}}</td>
                <td>{{.Action}}</td>
                <td>{{.Page}}</td>
                <td>{{.Details}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="stats">
        <table>
            <tr>
                <td class="label">Total Activities:</td>
                <td class="value">{{.Export.Statistics.TotalActivities}}</td>
            </tr>
            <tr>
                <td class="label">Unique Pages:</td>
                <td class="value">{{.Export.Statistics.UniquePages}}</td>
            </tr>
            <tr>
                <td class="label">Cart Items:</td>
                <td class="value">{{.Export.Statistics.CartItems}}</td>
            </tr>
            <tr>
                <td class="label">Wishlist Items:</td>
                <td class="value">{{.Export.Statistics.WishlistItems}}</td>
            </tr>
        </table>
    </div>

    <div style="clear: both;"></div>

    <div class="footer">
        <p>Generated by {{.AppName}}</p>
    </div>
</body>
</html>
`
