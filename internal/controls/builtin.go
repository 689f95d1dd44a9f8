package controls

// registerBuiltins installs the stock element catalog. Hosts can register
// additional types (or replace these) before wiring the registry into the
// style compiler.
func registerBuiltins(registry *Registry) {
	registry.Register("section", Definition{
		Name: "section",
		Controls: []ControlDef{
			{
				Name: "background_color",
				Type: TypeColor,
				Selectors: map[string]string{
					"{{WRAPPER}} .gmt-section-{{ID}}": "background-color: {{VALUE}};",
				},
			},
			{
				Name:        "padding",
				Type:        TypeDimensions,
				DefaultUnit: "px",
				Responsive:  true,
				Selectors: map[string]string{
					"{{WRAPPER}} .gmt-section-{{ID}}": "padding: {{TOP}}{{UNIT}} {{RIGHT}}{{UNIT}} {{BOTTOM}}{{UNIT}} {{LEFT}}{{UNIT}};",
				},
			},
			{
				Name:        "min_height",
				Type:        TypeSlider,
				DefaultUnit: "px",
				Responsive:  true,
				Selectors: map[string]string{
					"{{WRAPPER}} .gmt-section-{{ID}}": "min-height: {{VALUE}}{{UNIT}};",
				},
			},
		},
	})

	registry.Register("column", Definition{
		Name: "column",
		Controls: []ControlDef{
			{
				Name:        "width",
				Type:        TypeSlider,
				DefaultUnit: "%",
				Responsive:  true,
				Selectors: map[string]string{
					"{{WRAPPER}} .gmt-column-{{ID}}": "width: {{VALUE}}{{UNIT}};",
				},
			},
			{
				Name: "background_color",
				Type: TypeColor,
				Selectors: map[string]string{
					"{{WRAPPER}} .gmt-column-{{ID}}": "background-color: {{VALUE}};",
				},
			},
		},
	})

	registry.Register("heading", Definition{
		Name: "heading",
		Controls: []ControlDef{
			{Name: "title", Type: TypeText},
			{Name: "header_size", Type: TypeSelect, Default: "h2"},
			{
				Name: "color",
				Type: TypeColor,
				Selectors: map[string]string{
					"{{WRAPPER}} .gmt-element-{{ID}} .gmt-heading-title": "color: {{VALUE}};",
				},
			},
			{
				Name:        "font_size",
				Type:        TypeSlider,
				DefaultUnit: "px",
				Responsive:  true,
				Selectors: map[string]string{
					"{{WRAPPER}} .gmt-element-{{ID}} .gmt-heading-title": "font-size: {{VALUE}}{{UNIT}};",
				},
			},
			{
				Name: "align",
				Type: TypeSelect,
				Selectors: map[string]string{
					"{{WRAPPER}} .gmt-element-{{ID}}": "text-align: {{VALUE}};",
				},
			},
		},
	})

	registry.Register("text", Definition{
		Name: "text",
		Controls: []ControlDef{
			{Name: "content", Type: TypeText},
			{
				Name: "color",
				Type: TypeColor,
				Selectors: map[string]string{
					"{{WRAPPER}} .gmt-element-{{ID}}": "color: {{VALUE}};",
				},
			},
			{
				Name:        "font_size",
				Type:        TypeSlider,
				DefaultUnit: "px",
				Responsive:  true,
				Selectors: map[string]string{
					"{{WRAPPER}} .gmt-element-{{ID}}": "font-size: {{VALUE}}{{UNIT}};",
				},
			},
		},
	})

	registry.Register("button", Definition{
		Name: "button",
		Controls: []ControlDef{
			{Name: "text", Type: TypeText, Default: "Click here"},
			{
				Name: "button_text_color",
				Type: TypeColor,
				Selectors: map[string]string{
					"{{WRAPPER}} .gmt-element-{{ID}} .gmt-button": "color: {{VALUE}};",
				},
			},
			{
				Name: "background_color",
				Type: TypeColor,
				Selectors: map[string]string{
					"{{WRAPPER}} .gmt-element-{{ID}} .gmt-button": "background-color: {{VALUE}};",
				},
			},
			{
				Name:        "border_radius",
				Type:        TypeDimensions,
				DefaultUnit: "px",
				Selectors: map[string]string{
					"{{WRAPPER}} .gmt-element-{{ID}} .gmt-button": "border-radius: {{TOP}}{{UNIT}} {{RIGHT}}{{UNIT}} {{BOTTOM}}{{UNIT}} {{LEFT}}{{UNIT}};",
				},
			},
		},
	})

	registry.Register("image", Definition{
		Name: "image",
		Controls: []ControlDef{
			{Name: "url", Type: TypeText},
			{
				Name:        "width",
				Type:        TypeSlider,
				DefaultUnit: "%",
				Responsive:  true,
				Selectors: map[string]string{
					"{{WRAPPER}} .gmt-element-{{ID}} img": "width: {{VALUE}}{{UNIT}};",
				},
			},
			{
				Name: "opacity",
				Type: TypeNumber,
				Selectors: map[string]string{
					"{{WRAPPER}} .gmt-element-{{ID}} img": "opacity: {{VALUE}};",
				},
			},
		},
	})

	registry.Register("divider", Definition{
		Name: "divider",
		Controls: []ControlDef{
			{
				Name:    "color",
				Type:    TypeColor,
				Default: "#dddddd",
				Selectors: map[string]string{
					"{{WRAPPER}} .gmt-element-{{ID}} .gmt-divider-separator": "border-top-color: {{VALUE}};",
				},
			},
			{
				Name:        "weight",
				Type:        TypeSlider,
				DefaultUnit: "px",
				Selectors: map[string]string{
					"{{WRAPPER}} .gmt-element-{{ID}} .gmt-divider-separator": "border-top-width: {{VALUE}}{{UNIT}};",
				},
			},
		},
	})

	registry.Register("spacer", Definition{
		Name: "spacer",
		Controls: []ControlDef{
			{
				Name:        "space",
				Type:        TypeSlider,
				Default:     map[string]any{"size": 50, "unit": "px"},
				DefaultUnit: "px",
				Responsive:  true,
				Selectors: map[string]string{
					"{{WRAPPER}} .gmt-element-{{ID}} .gmt-spacer-inner": "height: {{VALUE}}{{UNIT}};",
				},
			},
		},
	})
}
