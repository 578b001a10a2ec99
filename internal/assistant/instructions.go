package assistant

import (
	"fmt"
	"strings"
)

// System instructions are French because the product serves francophone
// practitioners; response language follows the instruction language.

const targetedInstructionBase = "Tu es un assistant clinique destiné à des médecins. " +
	"Réponds de manière concise et factuelle, en t'appuyant uniquement sur les documents fournis " +
	"et les recommandations médicales en vigueur. Cite les sources fournies lorsque tu les utilises. " +
	"Signale explicitement toute situation nécessitant une prise en charge urgente."

const summaryInstructionBase = "Tu es un assistant clinique destiné à des médecins. " +
	"Produis une synthèse structurée de l'ensemble des documents fournis : antécédents pertinents, " +
	"résultats notables, points de vigilance. Reste factuel, n'invente aucune donnée. " +
	"Signale explicitement toute situation nécessitant une prise en charge urgente."

const analyzeInstruction = "Tu es un assistant clinique. Analyse ce document médical et dégage " +
	"les 3 éléments les plus critiques sur le plan clinique, ainsi que toute anomalie majeure. " +
	"Réponds en quelques phrases courtes, sans préambule."

const transcriptInstruction = "Nettoie cette transcription de consultation médicale : supprime " +
	"les hésitations, répétitions et tics de langage, corrige la ponctuation. " +
	"Conserve strictement chaque information clinique, sans reformuler le sens."

const soapInstruction = "Tu es un assistant de rédaction médicale. À partir de cette transcription " +
	"de consultation, rédige une note structurée en quatre sections obligatoires : " +
	"Subjectif, Objectif, Évaluation (Assessment), Plan. N'invente aucune donnée absente de la transcription."

const reviewInstruction = "Tu es un médecin senior chargé de la relecture critique d'un avis rendu " +
	"précédemment. Évalue la pertinence de la réponse au regard de la question posée et des sources " +
	"citées, signale les manques, les imprécisions et ce qui mériterait une réévaluation aujourd'hui."

// allergyDirective names every allergen so the model cannot miss one.
func allergyDirective(allergies []string) string {
	return fmt.Sprintf("ATTENTION : le patient présente les allergies suivantes : %s. "+
		"Toute suggestion thérapeutique doit impérativement les prendre en compte et exclure "+
		"les molécules concernées.", strings.Join(allergies, ", "))
}

const noAllergyStatement = "Aucune allergie connue pour ce patient."
