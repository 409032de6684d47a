package editor

import (
	"fmt"

	models "website-editor/internal/domain/models/editor"
	"website-editor/internal/repository/postgres"
)

// rowScanner is satisfied by pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// uiColumns lists ui columns under alias "u" in scanUi order
const uiColumns = `u.id, u.owner_id, u.ui_type, u.prompt, u.public, u.preview_image,
	u.view_count, u.likes_count, u.forked_from, u.created_at, u.updated_at`

// uiSelect returns the SELECT ... FROM clause joining owner profiles
func uiSelect(tables *postgres.TableNames) string {
	return fmt.Sprintf(`
		SELECT %s, p.name, p.image
		FROM %s u
		LEFT JOIN %s p ON p.id = u.owner_id`, uiColumns, tables.Uis, tables.Users)
}

// scanUi scans uiColumns followed by any extra destinations
func scanUi(row rowScanner, ui *models.Ui, extra ...any) error {
	var viewCount, likesCount int64
	dest := []any{
		&ui.ID,
		&ui.OwnerID,
		&ui.UiType,
		&ui.Prompt,
		&ui.Public,
		&ui.PreviewImage,
		&viewCount,
		&likesCount,
		&ui.ForkedFrom,
		&ui.CreatedAt,
		&ui.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return err
	}

	// CHECK constraints keep both counters non-negative
	ui.ViewCount = uint64(viewCount)
	ui.LikesCount = uint64(likesCount)
	return nil
}

// scanUiWithOwner scans a row produced by uiSelect
func scanUiWithOwner(row rowScanner) (*models.Ui, error) {
	var ui models.Ui
	owner := models.Owner{}
	if err := scanUi(row, &ui, &owner.Name, &owner.Image); err != nil {
		return nil, err
	}
	owner.ID = ui.OwnerID
	ui.Owner = &owner
	return &ui, nil
}

// subPromptColumns lists subprompt (alias "s") and code (alias "c") columns in scanSubPrompt order
const subPromptColumns = `s.id, s.ui_id, s.sub_id, s.sub_prompt, s.model_id, s.created_at, c.id, c.code`

func scanSubPrompt(row rowScanner) (*models.SubPrompt, error) {
	var sp models.SubPrompt
	code := models.Code{}
	err := row.Scan(
		&sp.ID,
		&sp.UiID,
		&sp.SubID,
		&sp.SubPromptText,
		&sp.ModelID,
		&sp.CreatedAt,
		&code.ID,
		&code.Code,
	)
	if err != nil {
		return nil, err
	}
	code.SubPromptID = sp.ID
	sp.Code = &code
	return &sp, nil
}
