package itemspec

import (
	"testing"

	"github.com/MythicSorcerer/azox-mc/nbt"
)

// TestGiveCommandParse is scenario S3 from spec.md §8.
func TestGiveCommandParse(t *testing.T) {
	input := `diamond_sword[custom_name='"Sword"',enchantments={sharpness:5}] 2`
	got, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.ID != "minecraft:diamond_sword" {
		t.Fatalf("ID = %q, want minecraft:diamond_sword", got.ID)
	}
	if got.Count != 2 {
		t.Fatalf("Count = %d, want 2", got.Count)
	}
	if got.Components == nil {
		t.Fatal("Components is nil")
	}

	name, ok := got.Components.Get("minecraft:custom_name")
	if !ok {
		t.Fatal("minecraft:custom_name missing")
	}
	s, err := name.StringValue()
	if err != nil || s != "Sword" {
		t.Fatalf("custom_name = (%q, %v), want (Sword, nil)", s, err)
	}

	ench, ok := got.Components.Get("minecraft:enchantments")
	if !ok {
		t.Fatal("minecraft:enchantments missing")
	}
	enchComp, err := ench.CompoundValue()
	if err != nil {
		t.Fatalf("enchantments CompoundValue: %v", err)
	}
	sharpness, ok := enchComp.Get("sharpness")
	if !ok {
		t.Fatal("sharpness missing (should not be namespace-rewritten)")
	}
	sv, err := sharpness.IntValue()
	if err != nil || sv != 5 {
		t.Fatalf("sharpness = (%d, %v), want (5, nil)", sv, err)
	}
}

func TestParseItemWithoutComponents(t *testing.T) {
	got, err := Parse("stick")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.ID != "minecraft:stick" {
		t.Fatalf("ID = %q, want minecraft:stick", got.ID)
	}
	if got.Count != 1 {
		t.Fatalf("Count = %d, want 1", got.Count)
	}
	if got.Components != nil {
		t.Fatalf("Components = %v, want nil", got.Components)
	}
}

func TestParseStripsGiveAndSelector(t *testing.T) {
	got, err := Parse("give @p stick 5")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.ID != "minecraft:stick" || got.Count != 5 {
		t.Fatalf("got = %+v", got)
	}
}

func TestParseExplicitNamespace(t *testing.T) {
	got, err := Parse("other:custom_item")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.ID != "other:custom_item" {
		t.Fatalf("ID = %q, want other:custom_item unchanged", got.ID)
	}
}

func TestParseListComponent(t *testing.T) {
	got, err := Parse("diamond_pickaxe[Damage=[0,12,4]]")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tag, ok := got.Components.Get("minecraft:Damage")
	if !ok {
		t.Fatal("minecraft:Damage missing")
	}
	l, err := tag.ListValue()
	if err != nil {
		t.Fatalf("ListValue: %v", err)
	}
	if l.ElemKind() != nbt.KindInt || l.Len() != 3 {
		t.Fatalf("Damage list = (%v, %d), want (Int, 3)", l.ElemKind(), l.Len())
	}
}

func TestParseMismatchedListKindFails(t *testing.T) {
	if _, err := Parse("stick[Tags=[1,'two']]"); err == nil {
		t.Fatal("expected an error for a heterogeneous list")
	}
}

func TestParseFloatAndBoolComponents(t *testing.T) {
	got, err := Parse("potion[Unbreakable=true,Weight=1.5]")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	unb, _ := got.Components.Get("minecraft:Unbreakable")
	if unb.Kind() != nbt.KindByte {
		t.Fatalf("Unbreakable kind = %v, want Byte", unb.Kind())
	}
	bv, _ := unb.ByteValue()
	if bv != 1 {
		t.Fatalf("Unbreakable = %d, want 1", bv)
	}
	weight, _ := got.Components.Get("minecraft:Weight")
	if weight.Kind() != nbt.KindDouble {
		t.Fatalf("Weight kind = %v, want Double", weight.Kind())
	}
}

func TestParseQuotedStringDegradesWhenNotJSON(t *testing.T) {
	got, err := Parse(`stick[custom_name='not valid json {']`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tag, _ := got.Components.Get("minecraft:custom_name")
	s, err := tag.StringValue()
	if err != nil || s != "not valid json {" {
		t.Fatalf("custom_name = (%q, %v), want literal degrade", s, err)
	}
}

func TestParseIntOverflowFallsBackToLong(t *testing.T) {
	got, err := Parse("stick[Big=9999999999]")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tag, _ := got.Components.Get("minecraft:Big")
	if tag.Kind() != nbt.KindLong {
		t.Fatalf("Big kind = %v, want Long", tag.Kind())
	}
	v, _ := tag.LongValue()
	if v != 9999999999 {
		t.Fatalf("Big = %d, want 9999999999", v)
	}
}

// formatComponents renders a components Compound back into item-spec
// component_list syntax, used only to test parser idempotence below — it
// is not part of the parser's public surface.
func formatComponents(c *nbt.Compound) string {
	var parts []string
	c.Range(func(name string, t nbt.Tag) bool {
		parts = append(parts, name+"="+formatValue(t))
		return true
	})
	out := "["
	for i, p := range parts {
		if i > 0 {
			out += ","
		}
		out += p
	}
	return out + "]"
}

func formatValue(t nbt.Tag) string {
	switch t.Kind() {
	case nbt.KindInt:
		v, _ := t.IntValue()
		return itoa(int64(v))
	case nbt.KindLong:
		v, _ := t.LongValue()
		return itoa(v)
	case nbt.KindString:
		v, _ := t.StringValue()
		return "'" + v + "'"
	case nbt.KindCompound:
		c, _ := t.CompoundValue()
		inner := ""
		first := true
		c.Range(func(name string, ct nbt.Tag) bool {
			if !first {
				inner += ","
			}
			first = false
			inner += name + ":" + formatValue(ct)
			return true
		})
		return "{" + inner + "}"
	default:
		return ""
	}
}

func itoa(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// TestComponentParseIdempotence exercises testable property 8: rendering
// a parsed components Compound back through a canonical formatter and
// re-parsing it yields an equal Compound.
func TestComponentParseIdempotence(t *testing.T) {
	got, err := Parse("stick[custom_name='hello',enchantments={sharpness:5}]")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	rendered := "stick" + formatComponents(got.Components)
	reparsed, err := Parse(rendered)
	if err != nil {
		t.Fatalf("re-Parse(%q): %v", rendered, err)
	}

	if got.Components.Len() != reparsed.Components.Len() {
		t.Fatalf("component count changed: %d vs %d", got.Components.Len(), reparsed.Components.Len())
	}
	got.Components.Range(func(name string, want nbt.Tag) bool {
		have, ok := reparsed.Components.Get(name)
		if !ok {
			t.Fatalf("%s missing after round-trip", name)
			return false
		}
		if have.Kind() != want.Kind() {
			t.Fatalf("%s kind changed: %v -> %v", name, want.Kind(), have.Kind())
		}
		if formatValue(have) != formatValue(want) {
			t.Fatalf("%s value changed: %s -> %s", name, formatValue(want), formatValue(have))
		}
		return true
	})
}
