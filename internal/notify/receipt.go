package notify

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ilindan-dev/order-notifier/internal/domain/model"
)

// receiptKind selects which Bot API endpoint carries the receipt.
type receiptKind int

const (
	receiptImage receiptKind = iota
	receiptPDF
	receiptDocument
)

// imageExtensions is the fixed set of filename extensions treated as photos.
var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".heic": {},
	".heif": {},
}

// classifyReceipt determines how to send a receipt: the extension is the
// primary signal, with the declared content type as a fallback when the
// filename is inconclusive. Anything that is neither an image nor a PDF
// goes out as a generic document.
func classifyReceipt(filename, contentType string) receiptKind {
	ext := strings.ToLower(filepath.Ext(filename))

	_, extIsImage := imageExtensions[ext]
	isImage := extIsImage || strings.HasPrefix(contentType, "image/")
	isPDF := ext == ".pdf" || contentType == "application/pdf"

	switch {
	case isImage:
		return receiptImage
	case isPDF:
		return receiptPDF
	default:
		return receiptDocument
	}
}

// fetchReceipt resolves the optional receipt reference into a sendable
// attachment. Any failure — empty reference, missing blob, store error,
// empty content — degrades to nil so the notification goes out as plain
// text; it never surfaces to the caller.
func (s *Service) fetchReceipt(ctx context.Context, fileID string) *model.Receipt {
	if fileID == "" || s.receipts == nil {
		return nil
	}

	receipt, err := s.receipts.GetByID(ctx, fileID)
	if err != nil {
		s.logger.Warn().Err(err).Str("receipt_id", fileID).Msg("receipt unavailable, sending text-only notification")
		return nil
	}
	if receipt == nil || len(receipt.Data) == 0 {
		return nil
	}
	return receipt
}
