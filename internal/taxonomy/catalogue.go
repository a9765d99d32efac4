package taxonomy

// Default is the catalogue shipped with the dashboard. Keys from earlier
// revisions are kept so stored classifications stay valid.
var Default = NewTable(Version, []Category{
	{
		Key:   "INGRESOS",
		Label: "Ingresos",
		Subcategories: []Subcategory{
			{Key: "Afiliados_DEBIN", Label: "Afiliados DEBIN"},
			{Key: "Pacientes_Transferencia", Label: "Pacientes Transferencia"},
			{Key: "Otros_Ingresos", Label: "Otros Ingresos"},
			{Key: "Ingresos - Transferencias", Label: "Transferencias"},
			{Key: "Ingresos - Transferencias Operativas", Label: "Transferencias Operativas"},
			{Key: "Ingresos - DEBIN Afiliados", Label: "DEBIN Afiliados"},
			{Key: "Ingresos - DEBIN Clientes", Label: "DEBIN Clientes"},
			{Key: "Ingresos - Tarjetas", Label: "Tarjetas"},
			{Key: "Ingresos - Ajustes / Devoluciones", Label: "Ajustes / Devoluciones"},
		},
	},
	{
		Key:   "EGRESOS",
		Label: "Egresos",
		Subcategories: []Subcategory{
			{Key: "Prestadores_Farmacias", Label: "Prestadores Farmacias"},
			{Key: "Prestadores_Sanatorios", Label: "Prestadores Sanatorios"},
			{Key: "Prestadores_Profesionales", Label: "Prestadores Profesionales"},
			{Key: "Sueldos", Label: "Sueldos"},
			{Key: "Impuestos", Label: "Impuestos"},
			{Key: "Comisiones_Bancarias", Label: "Comisiones Bancarias"},
			{Key: "Servicios", Label: "Servicios"},
			{Key: "Gastos_Operativos", Label: "Gastos Operativos"},
			{Key: "Egresos - Transferencias", Label: "Transferencias"},
			{Key: "Egresos - Transferencias a Terceros", Label: "Transferencias a Terceros"},
			{Key: "Egresos - DEBIN Pagos", Label: "DEBIN Pagos"},
			{Key: "Egresos - Ajustes", Label: "Ajustes"},
		},
	},
	{
		Key:   "IMPUESTOS",
		Label: "Impuestos",
		Subcategories: []Subcategory{
			{Key: "Impuestos - Débitos y Créditos", Label: "Débitos y Créditos"},
			{Key: "Impuestos - IVA", Label: "IVA"},
			{Key: "Impuestos - IIBB", Label: "IIBB"},
			{Key: "Impuestos - AFIP", Label: "AFIP"},
			{Key: "Impuestos - Percepciones", Label: "Percepciones"},
			{Key: "Impuestos - Devoluciones", Label: "Devoluciones"},
		},
	},
	{
		Key:   "GASTOS_OPERATIVOS",
		Label: "Gastos Operativos",
		Subcategories: []Subcategory{
			{Key: "Gastos Operativos - Compras", Label: "Compras"},
			{Key: "Gastos Operativos - Viáticos", Label: "Viáticos"},
			{Key: "Gastos Operativos - Compras Marketplace", Label: "Compras Marketplace"},
			{Key: "Gastos Operativos - Compras Operativas", Label: "Compras Operativas"},
			{Key: "Gastos Operativos - Insumos", Label: "Insumos"},
		},
	},
	{
		Key:   "COMISIONES_BANCARIAS",
		Label: "Comisiones Bancarias",
		Subcategories: []Subcategory{
			{Key: "Comisiones Bancarias - Transferencias", Label: "Transferencias"},
			{Key: "Comisiones Bancarias - Cheques", Label: "Cheques"},
			{Key: "Comisiones Bancarias - Mantenimiento", Label: "Mantenimiento"},
			{Key: "Comisiones Bancarias - Otras", Label: "Otras"},
		},
	},
	{
		Key:   "PRESTADORES",
		Label: "Prestadores",
		Subcategories: []Subcategory{
			{Key: "Prestadores - Servicios", Label: "Servicios"},
			{Key: "Prestadores - Profesionales", Label: "Profesionales"},
			{Key: "Prestadores - Servicios Recurrentes", Label: "Servicios Recurrentes"},
			{Key: "Prestadores - Pagos Eventuales", Label: "Pagos Eventuales"},
		},
	},
	{
		Key:   "SERVICIOS",
		Label: "Servicios",
		Subcategories: []Subcategory{
			{Key: "Servicios - Varios", Label: "Varios"},
			{Key: "Servicios - Electricidad", Label: "Electricidad"},
			{Key: "Servicios - Internet", Label: "Internet"},
			{Key: "Servicios - Software", Label: "Software"},
			{Key: "Servicios - Otros", Label: "Otros"},
		},
	},
	{
		Key:   "SUELDOS",
		Label: "Sueldos",
		Subcategories: []Subcategory{
			{Key: "Sueldos - Empleados", Label: "Empleados"},
			{Key: "Sueldos - Cargas Sociales", Label: "Cargas Sociales"},
			{Key: "Sueldos - Bonificaciones", Label: "Bonificaciones"},
		},
	},
	{
		Key:   "OTROS",
		Label: "Otros",
		Subcategories: []Subcategory{
			{Key: "Sin_Clasificar", Label: "Sin Clasificar"},
		},
	},
})
