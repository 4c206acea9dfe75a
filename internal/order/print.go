package order

import (
	"html/template"
	"io"
	"time"
)

var printTemplate = template.Must(template.New("order-print").Funcs(template.FuncMap{
	"inc":  func(i int) int { return i + 1 },
	"date": func(t time.Time) string { return t.Format("02/01/2006") },
	"datetime": func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format("02/01/2006 15:04")
	},
}).Parse(`<!DOCTYPE html>
<html lang="id">
<head>
<meta charset="utf-8">
<title>Pesanan #{{.Order.ID}}</title>
<style>
  body { font-family: Arial, sans-serif; font-size: 12px; margin: 24px; }
  h1 { font-size: 18px; margin-bottom: 4px; }
  table { width: 100%; border-collapse: collapse; margin-top: 12px; }
  th, td { border: 1px solid #333; padding: 4px 6px; text-align: left; }
  td.num, th.num { text-align: right; }
  .meta td { border: none; padding: 2px 6px 2px 0; }
  .badge { font-weight: bold; }
  @media print { .no-print { display: none; } }
</style>
</head>
<body onload="window.print()">
<h1>Pesanan #{{.Order.ID}}</h1>
<p class="badge">Status: {{.Badge.Label}}</p>
<table class="meta">
  <tr><td>Pelanggan</td><td>: {{.Order.Customer}}</td></tr>
  <tr><td>Kontak</td><td>: {{.Order.Contact}}</td></tr>
  <tr><td>Tanggal Pesanan</td><td>: {{date .Order.OrderDate}}</td></tr>
  <tr><td>Waktu Kirim</td><td>: {{datetime .Order.ShipmentTime}}</td></tr>
  <tr><td>Sales</td><td>: {{.Order.Username}}</td></tr>
</table>
<table>
  <thead>
    <tr><th>No</th><th>Produk</th><th class="num">Jumlah</th><th class="num">Harga Satuan</th><th class="num">Subtotal</th></tr>
  </thead>
  <tbody>
  {{range $i, $it := .Order.Items}}
    <tr>
      <td>{{inc $i}}</td>
      <td>{{$it.ProductName}}</td>
      <td class="num">{{$it.Quantity}}</td>
      <td class="num">{{$it.UnitValue.StringFixed 2}}</td>
      <td class="num">{{$it.Subtotal.StringFixed 2}}</td>
    </tr>
  {{end}}
  </tbody>
  <tfoot>
    <tr><th colspan="4" class="num">Total</th><th class="num">{{.Order.TotalValue.StringFixed 2}}</th></tr>
  </tfoot>
</table>
{{with .Order.Notes}}<p>Catatan: {{.}}</p>{{end}}
<button class="no-print" onclick="window.print()">Cetak</button>
</body>
</html>
`))

// RenderPrint writes a standalone page for one order that opens the browser print dialog on load.
func RenderPrint(w io.Writer, o *Order) error {
	return printTemplate.Execute(w, struct {
		Order *Order
		Badge Badge
	}{Order: o, Badge: ResolveBadge(o)})
}
