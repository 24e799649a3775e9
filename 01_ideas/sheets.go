package ideas

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"finn-content-pipeline/types"
)

// SheetSync appends generated ideas to a Google Sheet and reads back
// existing rows for duplicate avoidance. Every operation is
// best-effort: sync failures are warnings, never fatal to a run.
type SheetSync struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewSheetSync builds a SheetSync from GOOGLE_SHEETS_ID and the
// service-account file named by GOOGLE_SERVICE_ACCOUNT_FILE (default
// service_account.json). Returns nil, with a logged warning, when the
// integration is not configured — callers treat a nil SheetSync as
// "sync disabled".
func NewSheetSync(ctx context.Context) *SheetSync {
	spreadsheetID := os.Getenv("GOOGLE_SHEETS_ID")
	if spreadsheetID == "" {
		log.Println("[sheets] ⚠️ GOOGLE_SHEETS_ID not set — sync disabled")
		return nil
	}

	credFile := os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE")
	if credFile == "" {
		credFile = "service_account.json"
	}
	data, err := os.ReadFile(credFile)
	if err != nil {
		log.Printf("[sheets] ⚠️ service account file not readable: %v — sync disabled", err)
		return nil
	}

	conf, err := google.JWTConfigFromJSON(data, sheets.SpreadsheetsScope)
	if err != nil {
		log.Printf("[sheets] ⚠️ parse service account credentials: %v — sync disabled", err)
		return nil
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		log.Printf("[sheets] ⚠️ init sheets service: %v — sync disabled", err)
		return nil
	}

	return &SheetSync{svc: svc, spreadsheetID: spreadsheetID}
}

// ExistingTitles returns "title — description" strings from columns
// A and B of the named sheet, skipping the header row.
func (s *SheetSync) ExistingTitles(ctx context.Context, sheet string) ([]string, error) {
	resp, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, fmt.Sprintf("%s!A2:B", sheet)).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetch %s rows: %w", sheet, err)
	}

	var out []string
	for _, row := range resp.Values {
		title := cellString(row, 0)
		if title == "" {
			continue
		}
		if desc := cellString(row, 1); desc != "" {
			out = append(out, title+" — "+desc)
		} else {
			out = append(out, title)
		}
	}
	return out, nil
}

// AppendConversations adds one row per conversation idea.
func (s *SheetSync) AppendConversations(ctx context.Context, sheet string, file types.IdeaFile) {
	now := time.Now().Format("2006-01-02 15:04:05")
	synced := 0
	for _, idea := range file.Ideas {
		row := []interface{}{
			idea.Title,
			idea.Description,
			formatCharacters(idea.Characters),
			file.Metadata["language"],
			file.Metadata["tone"],
			file.Metadata["length"],
			charactersJSON(idea.Characters),
			now,
		}
		if err := s.appendRow(ctx, sheet, row); err != nil {
			log.Printf("[sheets] ⚠️ could not sync %q: %v", idea.Title, err)
			continue
		}
		synced++
	}
	if synced > 0 {
		log.Printf("[sheets] ✅ Synced %d conversation ideas to Google Sheets", synced)
	}
}

// AppendPodcasts adds one row per podcast idea.
func (s *SheetSync) AppendPodcasts(ctx context.Context, sheet string, file types.PodcastIdeaFile) {
	now := time.Now().Format("2006-01-02 15:04:05")
	synced := 0
	for _, idea := range file.Ideas {
		row := []interface{}{
			idea.Title,
			idea.Concept,
			formatCharacters(idea.Characters),
			file.Metadata["target_audience"],
			file.Metadata["duration"],
			file.Metadata["format"],
			charactersJSON(idea.Characters),
			now,
		}
		if err := s.appendRow(ctx, sheet, row); err != nil {
			log.Printf("[sheets] ⚠️ could not sync %q: %v", idea.Title, err)
			continue
		}
		synced++
	}
	if synced > 0 {
		log.Printf("[sheets] ✅ Synced %d podcast ideas to Google Sheets", synced)
	}
}

func (s *SheetSync) appendRow(ctx context.Context, sheet string, row []interface{}) error {
	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, fmt.Sprintf("%s!A2", sheet), &sheets.ValueRange{Values: [][]interface{}{row}}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	return err
}

func formatCharacters(chars []types.Character) string {
	parts := make([]string, 0, len(chars))
	for _, c := range chars {
		role := c.Role
		if role == "" {
			role = "N/A"
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", c.Name, role))
	}
	return strings.Join(parts, "; ")
}

func charactersJSON(chars []types.Character) string {
	data, err := json.Marshal(chars)
	if err != nil {
		return ""
	}
	return string(data)
}

func cellString(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	s, _ := row[i].(string)
	return strings.TrimSpace(s)
}
