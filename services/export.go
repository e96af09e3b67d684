package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kmuchiri/jikoni-orders/models"
	"github.com/kmuchiri/jikoni-orders/utils"
)

// ExportItemSeparator joins the formatted items inside the export's items
// column.
const ExportItemSeparator = "; "

// WriteOrdersCSV writes the order list as CSV: a header row plus one row per
// order. Pure function of the list, no store interaction.
func WriteOrdersCSV(w io.Writer, orders []models.Order) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Order ID", "Customer", "Items", "Special Instructions", "Time", "Status"}); err != nil {
		return err
	}
	for _, order := range orders {
		instructions := order.SpecialInstructions
		if instructions == "" {
			instructions = "None"
		}
		row := []string{
			order.ID,
			order.CustomerName,
			formatItems(order.Items),
			instructions,
			formatTimestamp(order.Timestamp),
			order.Status,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatItems renders each line as "Name (KSh price) xQty".
func formatItems(items []models.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s (%s) x%d",
			item.Name, utils.FormatCurrencyKES(item.Price), item.Quantity))
	}
	return strings.Join(parts, ExportItemSeparator)
}

func formatTimestamp(millis int64) string {
	if millis == 0 {
		return ""
	}
	return time.UnixMilli(millis).Format("2006-01-02 15:04")
}
