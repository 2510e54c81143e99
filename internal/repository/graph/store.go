package graph

import (
	"context"
	"fmt"

	"github.com/mamadbah2/batchcost/internal/config"
	"github.com/mamadbah2/batchcost/internal/costing"
)

// Store is the record-store surface the costing service consumes: raw batch
// and labour records, each list's field catalog, and partial write-back.
type Store interface {
	Batches(ctx context.Context) ([]Item, error)
	LabourLines(ctx context.Context) ([]Item, error)
	BatchColumns(ctx context.Context) ([]costing.FieldDescriptor, error)
	LabourColumns(ctx context.Context) ([]costing.FieldDescriptor, error)
	UpdateBatch(ctx context.Context, itemID string, fields map[string]any) error
	UpdateLabourLine(ctx context.Context, itemID string, fields map[string]any) error
}

// ListStore implements Store over the two configured SharePoint lists.
type ListStore struct {
	client      *Client
	batchesList string
	labourList  string
}

// NewListStore wires a Store around the Graph client and the configured list
// names.
func NewListStore(client *Client, cfg config.ListsConfig) *ListStore {
	return &ListStore{
		client:      client,
		batchesList: cfg.Batches,
		labourList:  cfg.LabourLines,
	}
}

// Batches fetches every record of the batches list.
func (s *ListStore) Batches(ctx context.Context) ([]Item, error) {
	return s.listItems(ctx, s.batchesList)
}

// LabourLines fetches every record of the labour lines list.
func (s *ListStore) LabourLines(ctx context.Context) ([]Item, error) {
	return s.listItems(ctx, s.labourList)
}

// BatchColumns fetches the batches list's field catalog.
func (s *ListStore) BatchColumns(ctx context.Context) ([]costing.FieldDescriptor, error) {
	return s.listColumns(ctx, s.batchesList)
}

// LabourColumns fetches the labour lines list's field catalog.
func (s *ListStore) LabourColumns(ctx context.Context) ([]costing.FieldDescriptor, error) {
	return s.listColumns(ctx, s.labourList)
}

// UpdateBatch patches a batch record's fields.
func (s *ListStore) UpdateBatch(ctx context.Context, itemID string, fields map[string]any) error {
	return s.updateItem(ctx, s.batchesList, itemID, fields)
}

// UpdateLabourLine patches a labour line record's fields.
func (s *ListStore) UpdateLabourLine(ctx context.Context, itemID string, fields map[string]any) error {
	return s.updateItem(ctx, s.labourList, itemID, fields)
}

func (s *ListStore) listItems(ctx context.Context, listName string) ([]Item, error) {
	listID, err := s.client.ListID(ctx, listName)
	if err != nil {
		return nil, fmt.Errorf("resolve list %s: %w", listName, err)
	}
	return s.client.ListItems(ctx, listID)
}

func (s *ListStore) listColumns(ctx context.Context, listName string) ([]costing.FieldDescriptor, error) {
	listID, err := s.client.ListID(ctx, listName)
	if err != nil {
		return nil, fmt.Errorf("resolve list %s: %w", listName, err)
	}
	return s.client.ListColumns(ctx, listID)
}

func (s *ListStore) updateItem(ctx context.Context, listName, itemID string, fields map[string]any) error {
	listID, err := s.client.ListID(ctx, listName)
	if err != nil {
		return fmt.Errorf("resolve list %s: %w", listName, err)
	}
	return s.client.UpdateItemFields(ctx, listID, itemID, fields)
}
