// Package export renders catalog and order data as Excel workbooks for the
// admin dashboard.
package export

import (
	"io"
	"strings"

	"bdshop/internal/domain"
	"github.com/tealeg/xlsx"
)

const timeLayout = "2006-01-02 15:04:05"

var productHeaders = []string{
	"ID", "Name", "Category", "Price (BDT)", "Discount %", "Effective Price (BDT)",
	"Stock", "Status", "Image", "Images", "Description", "CreatedAt", "UpdatedAt",
}

var orderHeaders = []string{
	"ID", "Customer", "Phone", "Address", "Items", "Total (BDT)", "Status", "Note", "CreatedAt",
}

// WriteProducts writes one row per product to a "Products" sheet.
func WriteProducts(w io.Writer, products []domain.Product) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return err
	}
	addHeader(sheet, productHeaders)

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetString(p.ID)
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Category)
		row.AddCell().SetString(domain.Taka(p.PricePoisha).StringFixed(2))
		row.AddCell().SetInt(p.Discount)
		row.AddCell().SetString(domain.Taka(p.EffectivePricePoisha()).StringFixed(2))
		row.AddCell().SetInt(p.StockCount)
		row.AddCell().SetString(string(p.Status))
		row.AddCell().SetString(p.ImageURL)
		row.AddCell().SetString(strings.Join(p.Images, ","))
		row.AddCell().SetString(p.Description)
		row.AddCell().SetString(p.CreatedAt.Format(timeLayout))
		row.AddCell().SetString(p.UpdatedAt.Format(timeLayout))
	}
	return file.Write(w)
}

// WriteOrders writes one row per order to an "Orders" sheet.
func WriteOrders(w io.Writer, orders []domain.Order) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return err
	}
	addHeader(sheet, orderHeaders)

	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetString(o.ID)
		row.AddCell().SetString(o.CustomerName)
		row.AddCell().SetString(o.Phone)
		row.AddCell().SetString(o.Address)
		row.AddCell().SetString(o.Items)
		row.AddCell().SetString(domain.Taka(o.TotalPoisha).StringFixed(2))
		row.AddCell().SetString(string(o.Status))
		row.AddCell().SetString(o.Note)
		row.AddCell().SetString(o.CreatedAt.Format(timeLayout))
	}
	return file.Write(w)
}

func addHeader(sheet *xlsx.Sheet, headers []string) {
	row := sheet.AddRow()
	for _, h := range headers {
		row.AddCell().SetString(h)
	}
}
