package handlers

import (
	"github.com/dmitriina1/AnalogueJira/internal/models"
	"github.com/dmitriina1/AnalogueJira/internal/ordering"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sibling loaders for the reorderer. All of them must run inside the
// transaction that applies the computed batch; the row locks serialize
// concurrent moves against the same container so nobody recomputes against
// a stale ordering.

func lockedListSiblings(tx *gorm.DB, boardID uint) (ordering.Container, error) {
	var lists []models.BoardList

	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("board_id = ? AND is_archived = ?", boardID, false).
		Order("position").
		Find(&lists).Error

	if err != nil {
		return ordering.Container{}, err
	}

	container := ordering.Container{ID: boardID}

	for _, list := range lists {
		container.Items = append(container.Items, ordering.Item{ID: list.ID, Position: list.Position})
	}

	return container, nil
}

func lockedCardSiblings(tx *gorm.DB, listID uint) (ordering.Container, error) {
	var cards []models.Card

	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("list_id = ? AND is_archived = ?", listID, false).
		Order("position").
		Find(&cards).Error

	if err != nil {
		return ordering.Container{}, err
	}

	container := ordering.Container{ID: listID}

	for _, card := range cards {
		container.Items = append(container.Items, ordering.Item{ID: card.ID, Position: card.Position})
	}

	return container, nil
}

func lockedChecklistSiblings(tx *gorm.DB, cardID uint) (ordering.Container, error) {
	var checklists []models.Checklist

	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("card_id = ?", cardID).
		Order("position").
		Find(&checklists).Error

	if err != nil {
		return ordering.Container{}, err
	}

	container := ordering.Container{ID: cardID}

	for _, checklist := range checklists {
		container.Items = append(container.Items, ordering.Item{ID: checklist.ID, Position: checklist.Position})
	}

	return container, nil
}

func lockedItemSiblings(tx *gorm.DB, checklistID uint) (ordering.Container, error) {
	var items []models.ChecklistItem

	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("checklist_id = ?", checklistID).
		Order("position").
		Find(&items).Error

	if err != nil {
		return ordering.Container{}, err
	}

	container := ordering.Container{ID: checklistID}

	for _, item := range items {
		container.Items = append(container.Items, ordering.Item{ID: item.ID, Position: item.Position})
	}

	return container, nil
}

// applyPositions writes a reorder batch for one model type. The model must
// be a pointer to the entity struct, e.g. &models.Card{}.
func applyPositions(tx *gorm.DB, model interface{}, updates []ordering.Update) error {
	for _, update := range updates {
		if err := tx.Model(model).Where("id = ?", update.ID).Update("position", update.Position).Error; err != nil {
			return err
		}
	}

	return nil
}
