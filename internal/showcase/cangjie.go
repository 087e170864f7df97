package showcase

import (
	"io"
	"strings"
)

// Cangjie prints algebraic data types told through Chinese character
// composition: a sum 一+二=三, a product 一+二=王, the quotient 田, the
// subtraction 愛-心=爱, and their stroke counts.
func Cangjie(w io.Writer) error {
	p := newPrinter(w)
	rule := strings.Repeat("=", 60)
	p.println(rule)
	p.println(titleStyle.Render("🇨🇳 Chinese Character Type Operations"))
	p.println("   Algebraic Data Types Through Character Composition")
	p.println(rule)

	sumType(p)
	productType(p)
	quotientType(p)
	subtractionType(p)
	strokeCounts(p)

	p.println()
	p.println(rule)
	return p.err
}

func subheading(p *printer, title string) {
	p.section(title)
	p.println(strings.Repeat("-", 60))
}

func sumType(p *printer) {
	subheading(p, "📊 Sum Type (和類型) - Disjoint Union")
	p.println("Mathematical: 1 + 2 = 3")
	p.println("Chinese: 一 + 二 = 三")
	p.println()
	p.println("Explanation:")
	p.println("  一 (one)  : Single horizontal stroke")
	p.println("  二 (two)  : Two horizontal strokes")
	p.println("  三 (three): Three horizontal strokes")
	p.println()
	p.println("Type Theory: Sum types represent 'either-or' choices")
	p.println("  Type[一 | 二 | 三] can be one, two, or three")
}

func productType(p *printer) {
	subheading(p, "📦 Product Type (積類型) - Cartesian Product")
	p.println("Character Composition: 一 + 二 = 王")
	p.println()
	p.println("Visual Breakdown:")
	p.println("  一 (horizontal stroke)")
	p.println("  二 (two horizontal strokes)")
	p.println("  = 王 (king) when combined vertically")
	p.println()
	p.println("  王 structure:")
	p.println("  一  (top stroke)")
	p.println("  │")
	p.println("  二  (middle strokes with vertical)")
	p.println()
	p.println("Type Theory: Product types combine multiple values")
	p.println("  Tuple(component1, component2) -> result")
}

func quotientType(p *printer) {
	subheading(p, "➗ Quotient Type (商類型) - Equivalence Classes")
	p.println("Character: 田 (field)")
	p.println()
	p.println("Visual Structure:")
	p.println("  ┌─┬─┐")
	p.println("  │ │ │")
	p.println("  ├─┼─┤")
	p.println("  │ │ │")
	p.println("  └─┴─┘")
	p.println()
	p.println("Explanation:")
	p.println("  田 is divided into 4 equal sections")
	p.println("  Each section is equivalent under rotation")
	p.println()
	p.println("Type Theory: Quotient types represent equivalence classes")
	p.println("  A / ~ where ~ is an equivalence relation")
}

func subtractionType(p *printer) {
	subheading(p, "➖ Subtraction Type (差類型) - Type Refinement")
	p.println("Character Transformation: 愛 - 心 = 爱")
	p.println()
	p.println("Breakdown:")
	p.println("  愛 (traditional 'love') = complex structure with 心 (heart)")
	p.println("  - 心 (heart radical)")
	p.println("  = 爱 (simplified 'love')")
	p.println()
	p.println("Component Analysis:")
	p.println("  Traditional 愛: Contains the radical 心 (heart)")
	p.println("  Simplified  爱: Streamlined form")
	p.println()
	p.println("Type Theory: Type refinement or dependent types")
	p.println("  Removing constraints while preserving core meaning")
}

// strokes of each character shown in the analysis
var strokes = map[string]int{
	"一": 1,
	"二": 2,
	"三": 3,
	"愛": 13,
	"爱": 10,
}

func strokeCounts(p *printer) {
	subheading(p, "📝 Stroke Count Analysis")
	p.println("Sum Type:")
	for _, c := range []string{"一", "二"} {
		p.printf("  %s: %d %s\n", c, strokes[c], plural(strokes[c]))
	}
	p.printf("  三: %d strokes (%d + %d = %d)\n", strokes["三"], strokes["一"], strokes["二"], strokes["一"]+strokes["二"])
	p.println()
	p.println("Subtraction Type:")
	p.printf("  愛: %d strokes (traditional)\n", strokes["愛"])
	p.printf("  爱: %d strokes (simplified)\n", strokes["爱"])
	p.printf("  Difference: %d strokes (approximately 心 radical)\n", strokes["愛"]-strokes["爱"])
}

func plural(n int) string {
	if n == 1 {
		return "stroke"
	}
	return "strokes"
}
