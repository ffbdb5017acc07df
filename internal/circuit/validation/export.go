package validation

import "circuit-copilot/internal/circuit/models"

// ValidateExportOptions проверяет параметры экспорта: формат и все флаги обязательны.
func ValidateExportOptions(candidate any) (*models.ExportOptions, error) {
	c := &collector{}

	obj, ok := asObject(candidate)
	if !ok {
		c.add(rootPath, "Expected object, received "+typeName(candidate))
		return nil, c.err()
	}

	opts := &models.ExportOptions{
		Format: models.ExportFormat(requiredEnum(c, obj, "format", "",
			string(models.FormatPDF), string(models.FormatPNG), string(models.FormatSVG),
			string(models.FormatSTL), string(models.FormatOBJ))),
		IncludeSchematic:  requiredBool(c, obj, "include_schematic"),
		IncludeBreadboard: requiredBool(c, obj, "include_breadboard"),
		IncludePCB:        requiredBool(c, obj, "include_pcb"),
		Include3D:         requiredBool(c, obj, "include_3d"),
		IncludeAssembly:   requiredBool(c, obj, "include_assembly"),
	}

	if err := c.err(); err != nil {
		return nil, err
	}
	return opts, nil
}

func requiredBool(c *collector, obj map[string]any, key string) bool {
	raw, present := obj[key]
	if !present {
		c.add(key, "Required")
		return false
	}
	b, ok := raw.(bool)
	if !ok {
		c.add(key, "Expected boolean, received "+typeName(raw))
		return false
	}
	return b
}
