package schema

// ResumeSchema returns the extraction schema for resume documents.
// Every field is declared so that results always carry the full shape,
// with empty values standing in for sections absent from the source.
func ResumeSchema() Schema {
	return Schema{
		Name: "Resume",
		Description: `You are an expert resume parser. Analyze the resume document and extract the information into the structured JSON format below. Be as accurate as possible.
Extract all sections: personal details, professional summary, work experience, education, projects, and a comma-separated skills list.
Standardize dates to 'YYYY-MM-DD' or 'YYYY-MM' format where appropriate. Use 'Present' for an ongoing position's end date.`,
		Fields: []Field{
			{
				Name:     "personalDetails",
				Kind:     KindObject,
				Nullable: true,
				Fields: []Field{
					{Name: "fullName", Kind: KindString, Description: "The full name of the candidate"},
					{Name: "email", Kind: KindString, Description: "The email address of the candidate"},
					{Name: "phoneNumber", Kind: KindString, Description: "The phone number of the candidate"},
					{Name: "address", Kind: KindString, Description: "The physical address of the candidate"},
					{Name: "linkedin", Kind: KindString, Description: "The URL of the LinkedIn profile"},
				},
				Description: "Personal details, or null if not found",
			},
			{Name: "summary", Kind: KindString, Required: true, Description: "The professional summary or objective, empty string if not found"},
			{
				Name: "experience",
				Kind: KindObjectList,
				Fields: []Field{
					{Name: "jobTitle", Kind: KindString, Required: true},
					{Name: "company", Kind: KindString, Required: true},
					{Name: "startDate", Kind: KindString, Description: "Start date in 'YYYY-MM-DD' format"},
					{Name: "endDate", Kind: KindString, Description: "End date in 'YYYY-MM-DD' format, or 'Present'"},
					{Name: "description", Kind: KindString, Description: "Role and responsibilities"},
				},
				Required:    true,
				Description: "All work experience entries in document order, empty array if none",
			},
			{
				Name: "education",
				Kind: KindObjectList,
				Fields: []Field{
					{Name: "institution", Kind: KindString, Required: true},
					{Name: "degree", Kind: KindString, Required: true},
					{Name: "graduationDate", Kind: KindString, Description: "Graduation date in 'YYYY-MM' format"},
				},
				Required:    true,
				Description: "All education entries, empty array if none",
			},
			{
				Name: "projects",
				Kind: KindObjectList,
				Fields: []Field{
					{Name: "name", Kind: KindString, Required: true},
					{Name: "description", Kind: KindString},
					{Name: "url", Kind: KindString, Description: "A valid URL for the project, empty string if none"},
				},
				Required:    true,
				Description: "All projects, empty array if none",
			},
			{Name: "skills", Kind: KindString, Required: true, Description: "Comma-separated list of skills, empty string if not found"},
		},
	}
}

// GenerationSchema returns the schema constraining generate-from-parameters
// output: a structured bundle of summary, experience, education, and skills.
func GenerationSchema() Schema {
	return Schema{
		Name: "GeneratedResume",
		Description: `You are an expert resume writer. Create compelling, structured resume content for the candidate.
Generate a professional summary, a few realistic work experience entries, a couple of education entries, and a comma-separated skills list.`,
		Fields: []Field{
			{Name: "summary", Kind: KindString, Required: true, Description: "A professional summary for the resume"},
			{
				Name: "experience",
				Kind: KindObjectList,
				Fields: []Field{
					{Name: "jobTitle", Kind: KindString, Required: true},
					{Name: "company", Kind: KindString, Required: true},
					{Name: "startDate", Kind: KindString},
					{Name: "endDate", Kind: KindString},
					{Name: "description", Kind: KindString},
				},
				Required:    true,
				Description: "Relevant work experience entries",
			},
			{
				Name: "education",
				Kind: KindObjectList,
				Fields: []Field{
					{Name: "institution", Kind: KindString, Required: true},
					{Name: "degree", Kind: KindString, Required: true},
					{Name: "graduationDate", Kind: KindString},
				},
				Required:    true,
				Description: "Educational qualifications",
			},
			{Name: "skills", Kind: KindString, Required: true, Description: "Comma-separated list of relevant skills"},
		},
	}
}
