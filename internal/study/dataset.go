package study

// shippedStudies is the read-only reference dataset bundled with the
// service. The custom pool imported by practitioners is stored separately
// and merged at query time.
var shippedStudies = []MedicalStudy{
	{
		ID:            "study-001",
		Title:         "Prise en charge de l'hypertension artérielle de l'adulte",
		Specialty:     "cardiologie",
		PublishedAt:   "2023-09-01",
		EvidenceLevel: EvidenceA,
		Body:          "Objectif tensionnel inférieur à 140/90 mmHg en consultation. Privilégier une monothérapie initiale par IEC, ARA2, inhibiteur calcique ou diurétique thiazidique selon le profil du patient.",
	},
	{
		ID:            "study-002",
		Title:         "Antibiothérapie des infections urinaires simples de la femme",
		Specialty:     "médecine générale",
		PublishedAt:   "2022-04-12",
		EvidenceLevel: EvidenceA,
		Body:          "Fosfomycine-trométamol en dose unique en première intention dans la cystite simple. La nitrofurantoïne est l'alternative de deuxième intention. Pas d'ECBU dans la cystite simple.",
	},
	{
		ID:            "study-003",
		Title:         "Dépistage du diabète de type 2 chez les sujets à risque",
		Specialty:     "endocrinologie",
		PublishedAt:   "2021-11-30",
		EvidenceLevel: EvidenceB,
		Body:          "Glycémie à jeun tous les 3 ans chez les sujets de plus de 45 ans avec facteur de risque. HbA1c supérieure ou égale à 6,5 % confirmée sur deux prélèvements pour le diagnostic.",
	},
	{
		ID:            "study-004",
		Title:         "Corticothérapie inhalée dans l'asthme persistant léger",
		Specialty:     "pneumologie",
		PublishedAt:   "2020-06-18",
		EvidenceLevel: EvidenceB,
		Body:          "La corticothérapie inhalée à faible dose réduit les exacerbations et la mortalité. L'association budésonide-formotérol à la demande est une option validée chez l'adulte.",
	},
	{
		ID:            "study-005",
		Title:         "Intérêt de la télésurveillance dans l'insuffisance cardiaque chronique",
		Specialty:     "cardiologie",
		PublishedAt:   "2024-02-05",
		EvidenceLevel: EvidenceC,
		Body:          "Données observationnelles suggérant une réduction des réhospitalisations sous télésurveillance du poids et des symptômes. Essais randomisés de puissance limitée.",
	},
}

// ShippedStudies returns a copy of the bundled dataset.
func ShippedStudies() []MedicalStudy {
	out := make([]MedicalStudy, len(shippedStudies))
	copy(out, shippedStudies)
	return out
}
