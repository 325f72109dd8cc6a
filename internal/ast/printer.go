package ast

import (
	"fmt"
	"strings"
)

func (p *Program) String() string {
	var b strings.Builder
	for _, ig := range p.Ignores {
		b.WriteString(ig.String() + "\n")
	}
	for _, s := range p.Sets {
		b.WriteString(s.String() + "\n")
	}
	for _, cfg := range p.Configs {
		b.WriteString(cfg.String() + "\n")
	}
	for _, m := range p.Macros {
		b.WriteString(m.String() + "\n")
	}
	for _, pl := range p.Pipelines {
		b.WriteString(pl.String() + "\n")
	}
	return b.String()
}

func (ig *IgnoreDirective) String() string {
	return fmt.Sprintf("ignore %q", ig.Path)
}

func (s *SetDecl) String() string {
	return "set " + s.Name
}

func (cfg *ConfigDirective) String() string {
	return fmt.Sprintf("config %s %s %s", cfg.Module, cfg.Field, cfg.Value)
}

func (m *MacroDef) String() string {
	return fmt.Sprintf("def %s %s", m.Name, m.Pipeline.String())
}

func (pl *Pipeline) String() string {
	parts := make([]string, len(pl.Ops))
	for i, op := range pl.Ops {
		parts[i] = op.String()
	}
	return strings.Join(parts, " ")
}

func (a Arg) String() string {
	switch a.Kind {
	case ArgString:
		return fmt.Sprintf("%q", a.Text)
	case ArgCharset:
		return "[" + a.Text + "]"
	default:
		return a.Text
	}
}

func (c *Call) String() string {
	var b strings.Builder
	if c.Modifier != 0 {
		b.WriteByte(c.Modifier)
	}
	b.WriteString(c.Name)
	for _, a := range c.Args {
		b.WriteByte(' ')
		b.WriteString(a.String())
	}
	return b.String()
}

func (r *SetRedirect) String() string {
	return fmt.Sprintf("{ %s %s %s", r.Inner.String(), r.Mode.arrow(), r.Set)
}

func (c *Combinator) String() string {
	var parts []string
	for _, a := range c.PosArgs {
		parts = append(parts, a.String())
	}
	for k, v := range c.KWArgs {
		parts = append(parts, fmt.Sprintf("%s=%s", k, v))
	}
	for _, sub := range c.Subops {
		parts = append(parts, sub.String())
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(parts, ", "))
}

func (m *MacroCall) String() string {
	return "do " + m.Name
}

func (u *UseSet) String() string {
	return "use " + u.Name
}
