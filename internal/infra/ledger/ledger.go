package ledger

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"vitrine-engine/internal/domain/order"
	"vitrine-engine/internal/infra"
	"vitrine-engine/internal/infra/storehouse"
	"vitrine-engine/internal/pkg/config"
)

// Header of the append-only order ledger. The itens_json column carries the
// full snapshot serialized, so a row is self-contained even when the human
// readable columns are lossy.
var Header = []string{
	"ID_PEDIDO", "DATA_HORA", "NOME_CLIENTE", "CONTATO_CLIENTE",
	"ITENS_PEDIDO", "VALOR_TOTAL", "LINKIMAGEM", "STATUS", "itens_json",
}

// Committer is the slice of the storehouse client the ledger needs.
type Committer interface {
	Fetch(ctx context.Context, path string) (*storehouse.Document, error)
	Commit(ctx context.Context, path string, content []byte, baseVersion, message string) (string, error)
}

// Ledger appends order snapshots with a guarded single-write commit:
// read the current document and its version token, append one CSV row, write
// back conditioned on the token. A token mismatch means another writer
// committed in between; that surfaces as KindConflict with no automatic
// retry. A resubmission re-reads the fresh token.
type Ledger struct {
	store Committer
	cfg   config.StorehouseConfig
}

func NewLedger(store Committer, cfg config.StorehouseConfig) *Ledger {
	return &Ledger{store: store, cfg: cfg}
}

func (l *Ledger) Append(ctx context.Context, snap *order.Snapshot) error {
	content, version, err := l.current(ctx)
	if err != nil {
		return err
	}

	row, err := encodeRow(snap)
	if err != nil {
		return infra.WrapRepoErr(infra.KindMalformed, "failed to encode order row", err)
	}

	next := append(bytes.TrimRight(content, "\n"), '\n')
	next = append(next, row...)

	message := "pedido " + snap.ID
	if _, err := l.store.Commit(ctx, l.cfg.OrdersPath, next, version, message); err != nil {
		return err
	}
	return nil
}

// current returns the ledger document and its version token. A ledger that
// does not exist yet is not an error: it starts from header-only content
// with an empty token, which the host treats as a create.
func (l *Ledger) current(ctx context.Context) ([]byte, string, error) {
	doc, err := l.store.Fetch(ctx, l.cfg.OrdersPath)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return headerOnly(), "", nil
		}
		return nil, "", err
	}
	if len(bytes.TrimSpace(doc.Content)) == 0 {
		return headerOnly(), doc.Version, nil
	}
	return doc.Content, doc.Version, nil
}

func headerOnly() []byte {
	return []byte(strings.Join(Header, ",") + "\n")
}

func encodeRow(snap *order.Snapshot) ([]byte, error) {
	itemsJSON, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	record := []string{
		snap.ID,
		snap.CreatedAt.Format("02/01/2006 15:04:05"),
		snap.CustomerName,
		snap.CustomerContact,
		summarizeItems(snap.Items),
		fmt.Sprintf("%.2f", float64(snap.TotalCents)/100),
		snap.ImageURL,
		string(snap.Status),
		string(itemsJSON),
	}
	if err := w.Write(record); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// summarizeItems renders the human readable ITENS_PEDIDO column:
// "2x Camiseta (Tamanho: M) | 1x Boné".
func summarizeItems(items []order.Item) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%dx %s", item.Quantity, item.Name))
	}
	return strings.Join(parts, " | ")
}
