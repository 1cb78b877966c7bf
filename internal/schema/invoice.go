package schema

// addressFields is the shared shape of the four invoice address blocks.
func addressFields() []Field {
	return []Field{
		{Name: "name", Kind: KindString},
		{Name: "address", Kind: KindString},
		{Name: "gstin", Kind: KindString, Description: "GST identification number"},
		{Name: "pan", Kind: KindString},
		{Name: "state", Kind: KindString},
		{Name: "stateCode", Kind: KindString},
		{Name: "phone", Kind: KindString},
	}
}

// InvoiceSchema returns the extraction schema for tax invoice documents.
func InvoiceSchema() Schema {
	return Schema{
		Name: "Invoice",
		Description: `You are an expert industrial document analyst. Extract EVERY detail of the invoice into the structured JSON schema below.
Extract all header dates and numbers, the four party blocks, every line item column, and the summary table at the bottom precisely.`,
		Fields: []Field{
			{Name: "documentType", Kind: KindString, Description: "e.g. TAX INVOICE"},
			{Name: "documentCopy", Kind: KindString, Description: "e.g. Original for Recipient"},
			{Name: "reverseCharge", Kind: KindString},
			{Name: "supplyingLocation", Kind: KindObject, Fields: addressFields()},
			{Name: "invoiceNo", Kind: KindString, Required: true},
			{Name: "invoiceDate", Kind: KindString},
			{Name: "category", Kind: KindString, Description: "e.g. B2B"},
			{Name: "transactionType", Kind: KindString},
			{Name: "orderNo", Kind: KindString},
			{Name: "orderDate", Kind: KindString},
			{Name: "delivery", Kind: KindString},
			{Name: "delDate", Kind: KindString},
			{Name: "intRefNo", Kind: KindString},
			{Name: "reference", Kind: KindString},
			{Name: "seller", Kind: KindObject, Fields: addressFields()},
			{Name: "billToParty", Kind: KindObject, Fields: addressFields()},
			{Name: "shipToParty", Kind: KindObject, Fields: addressFields()},
			{
				Name: "details",
				Kind: KindObject,
				Fields: []Field{
					{Name: "termsOfPayment", Kind: KindString},
					{Name: "dueDate", Kind: KindString},
					{Name: "grossWeight", Kind: KindString},
					{Name: "volumeTotal", Kind: KindString},
					{Name: "netWeight", Kind: KindString},
					{Name: "currency", Kind: KindString},
					{Name: "storageLoc", Kind: KindString},
					{Name: "logSheetNo", Kind: KindString},
					{Name: "gcRouteNo", Kind: KindString},
					{Name: "vehicleNo", Kind: KindString},
					{Name: "modeOfTransport", Kind: KindString},
				},
			},
			{
				Name: "items",
				Kind: KindObjectList,
				Fields: []Field{
					{Name: "materialHsn", Kind: KindString, Description: "Material/HSN code"},
					{Name: "description", Kind: KindString},
					{Name: "qty", Kind: KindNumber},
					{Name: "packs", Kind: KindString, Description: "e.g. 2 CAR"},
					{Name: "volume", Kind: KindString, Description: "Kg/Lt/M value"},
					{Name: "rate", Kind: KindNumber},
					{Name: "value", Kind: KindNumber, Description: "Base value before discounts"},
					{Name: "disc1", Kind: KindNumber, Description: "In-Bill Disc 1 amount"},
					{Name: "disc2", Kind: KindNumber, Description: "In-Bill Disc 2 amount"},
					{Name: "cashDisc", Kind: KindNumber},
					{Name: "taxableAmount", Kind: KindNumber},
					{Name: "taxAmount", Kind: KindNumber},
					{Name: "totalAmount", Kind: KindNumber},
				},
				Required:    true,
				Description: "Every line item in document order",
			},
			{
				Name: "summary",
				Kind: KindObject,
				Fields: []Field{
					{Name: "valueSale", Kind: KindNumber},
					{Name: "inBillDisc", Kind: KindNumber},
					{Name: "fastCashDisc", Kind: KindNumber},
					{Name: "taxableAmount", Kind: KindNumber},
					{Name: "centralGst", Kind: KindNumber},
					{Name: "stateGst", Kind: KindNumber},
					{Name: "commercialRounding", Kind: KindNumber},
					{Name: "totalDocumentAmount", Kind: KindNumber},
				},
				Description: "The aggregate totals block exactly as printed",
			},
			{Name: "totalInWords", Kind: KindString},
			{Name: "irn", Kind: KindString},
			{Name: "acknowledgementNo", Kind: KindString},
			{Name: "acknowledgementDate", Kind: KindString},
		},
	}
}
