package form

// fieldTitles maps the template's internal field names to the labels a
// client should show. Unknown names fall through verbatim.
var fieldTitles = map[string]string{
	"Text1":  "Obra / Proyecto",
	"Text2":  "Fecha",
	"Text7":  "Cliente / Contratista",
	"Text8":  "Dirección de la obra",
	"Text9":  "Persona de contacto",
	"Text10": "Correo electrónico",
	"Text11": "Teléfono de contacto",
	"Text12": "Carga a izar",
	"Text13": "Peso de la carga (kg)",
	"Text14": "Dimensiones de la carga",
	"Text15": "¿Mercancía peligrosa?",
	"Text16": "Puntos de estrobaje / anclaje",
	"Text17": "Capacidad máxima de la grúa (kg)",
	"Text18": "Longitud de pluma (m)",
	"Text19": "Contrapesos",
	"Text20": "Radio máximo (m)",
	"Text21": "Altura máxima (m)",
	"Text22": "Total Kg levantados",
	"Text23": "Plumín / Jib",
	"Text24": "Tipo de grúa",
	"Text25": "Tonelaje de la grúa",
	"Text26": "Dimensiones de la grúa",
	"Text27": "Matrícula",
	"Text28": "Cadenas necesarias y capacidad",
	"Text29": "Eslingas necesarias y capacidad",
	"Text30": "Grilletes necesarios y capacidad",
	"Text31": "Gancho necesario / dimensión",
	"Text49": "Separador necesario",
	"Text50": "Dirección técnica",
	"Text51": "Jefe de maniobra",
	"Text52": "Operador de grúa",
	"Text53": "Señalista",
	"Text54": "Eslingador",
	"Text55": "Seguridad / Supervisión",
}

// Label returns the display label for a field name, or the raw name
// when the vocabulary has no entry for it.
func Label(name string) string {
	if title, ok := fieldTitles[name]; ok {
		return title
	}
	return name
}
