package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		body string
		ctx  RenderContext
		want string
	}{
		{
			name: "substitutes known placeholders",
			body: "Hallo {{customer_first_name}}, Betrag {{total_price}} €",
			ctx:  RenderContext{CustomerFirstName: "Max", TotalPrice: "123,45"},
			want: "Hallo Max, Betrag 123,45 €",
		},
		{
			name: "unknown token left verbatim",
			body: "Hallo {{customer_first_name}} {{unused}}",
			ctx:  RenderContext{CustomerFirstName: "Max"},
			want: "Hallo Max {{unused}}",
		},
		{
			name: "empty value substitutes to empty string",
			body: "Telefon: {{customer_phone}}.",
			ctx:  RenderContext{},
			want: "Telefon: .",
		},
		{
			name: "repeated tokens all replaced",
			body: "{{order_number}} / {{order_number}}",
			ctx:  RenderContext{OrderNumber: "TS-20260829-1234"},
			want: "TS-20260829-1234 / TS-20260829-1234",
		},
		{
			name: "trailing whitespace stripped per line",
			body: "Zeile eins   \nZeile {{city}}\t\n",
			ctx:  RenderContext{City: "Hamburg"},
			want: "Zeile eins\nZeile Hamburg\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Render(tc.body, tc.ctx))
		})
	}
}

func TestStripHTML(t *testing.T) {
	html := `<html><body><h1>Bestellung {{order_number}}</h1>
<p>Vielen&nbsp;Dank f&amp;uuml;r Ihre   Bestellung.</p></body></html>`

	got := StripHTML(html)
	assert.NotContains(t, got, "<")
	assert.NotContains(t, got, ">")
	assert.Contains(t, got, "Bestellung {{order_number}}")
	assert.NotContains(t, got, "  ")
}

func TestRenderThenStripKeepsOrderNumber(t *testing.T) {
	body := `<html><body>
<p>Sehr geehrte(r) {{customer_name}},</p>
<p>Ihre Bestellung <strong>{{order_number}}</strong> über {{quantity}} Liter
{{oil_type}} ist eingegangen. Gesamtpreis: {{total_price}} €.</p>
</body></html>`

	ctx := RenderContext{
		CustomerName: "Herr Max Mustermann",
		OrderNumber:  "TS-20260829-4711",
		Quantity:     "3000",
		OilType:      "Heizöl EL Standard",
		TotalPrice:   "2.754,00",
	}

	text := StripHTML(Render(body, ctx))
	assert.NotEmpty(t, text)
	assert.Contains(t, text, "TS-20260829-4711")
	assert.Contains(t, text, "2.754,00")
}
