package coach

import "strings"

type fallbackRule struct {
	keywords []string
	replies  map[string]string
}

// fallbackRules are checked in order; the first rule with a keyword found in
// the lower-cased message answers.
var fallbackRules = []fallbackRule{
	{
		keywords: []string{"driver", "tee shot", "off the tee", "utslag"},
		replies: map[string]string{
			"en": `For driver consistency, focus on these fundamentals:

1. **Ball Position**: Play the ball off your lead heel (inside the instep). This promotes an upward strike for optimal launch.

2. **Spine Angle**: Tilt your spine slightly away from the target at address. Maintain this through impact.

3. **Tempo**: The driver swing should feel smooth, not rushed. Try counting "1-2-3" during your backswing.

**Quick Drill**: Hit 5 drivers at 70% effort focusing only on center contact. Then gradually build speed while maintaining that strike quality.`,
			"no": `For jevnere driverslag, fokuser på disse grunnleggende punktene:

1. **Ballplassering**: Legg ballen ut for innsiden av fremre hæl. Det gir et oppadgående treff og optimal utgangsvinkel.

2. **Ryggvinkel**: Vipp ryggraden litt bort fra målet i oppstillingen, og hold den gjennom treffet.

3. **Tempo**: Driversvingen skal føles rolig, ikke stresset. Prøv å telle "1-2-3" i baksvingen.

**Rask øvelse**: Slå 5 drivere på 70 % innsats med fokus kun på senterkontakt. Øk farten gradvis mens treffkvaliteten holdes.`,
		},
	},
	{
		keywords: []string{"slice", "fade", "cut", "open face", "åpent blad"},
		replies: map[string]string{
			"en": `A slice typically comes from an open clubface relative to your swing path. Here's how to fix it:

1. **Grip Check**: Ensure you can see 2-3 knuckles on your lead hand at address. A weak grip often causes an open face.

2. **Path Drill**: Place a headcover 3 inches outside your ball. Practice swinging without hitting it - this promotes an in-to-out path.

3. **Feel**: At impact, feel like you're "closing the door" with your trail hand.

Start with half-swings and progress to full swings once the feeling clicks. This usually takes 20-30 balls to feel natural.`,
			"no": `En slice kommer som regel av et åpent kølleblad i forhold til svingbanen. Slik retter du den:

1. **Grepsjekk**: Du skal se 2-3 knoker på fremre hånd i oppstillingen. Et svakt grep gir ofte åpent blad.

2. **Baneøvelse**: Legg et headcover 7-8 cm utenfor ballen og sving uten å treffe det. Det fremmer en bane innenfra og ut.

3. **Følelse**: I treffet skal det føles som om bakre hånd "lukker døren".

Start med halve svinger og gå over til fulle når følelsen sitter. Det tar vanligvis 20-30 baller.`,
		},
	},
	{
		keywords: []string{"hook", "draw", "closed face", "pull", "lukket blad"},
		replies: map[string]string{
			"en": `A hook happens when your face is closed to your path. Let's work on that:

1. **Grip**: Check that your trail hand isn't too strong (palm facing up). Rotate it more toward neutral.

2. **Exit Path**: Feel like your hands exit toward the target, not around your body.

3. **Drill**: Hit shots with a slightly open stance - this encourages a more out-to-in path to neutralize the hook.

**Focus**: On your next range session, hit 10 shots trying to hit a slight fade. Even if you hit it straight, you'll have reduced the hook tendency.`,
			"no": `En hook oppstår når bladet er lukket i forhold til svingbanen. Dette kan du jobbe med:

1. **Grep**: Sjekk at bakre hånd ikke er for sterk (håndflaten opp). Roter den mer mot nøytral.

2. **Utgangsbane**: Kjenn at hendene går ut mot målet, ikke rundt kroppen.

3. **Øvelse**: Slå med litt åpen stilling. Det gir en bane mer utenfra og inn som nøytraliserer hooken.

**Fokus**: Neste rangeøkt, slå 10 slag der du prøver å lage en liten fade. Selv om ballen går rett, har du redusert hooktendensen.`,
		},
	},
	{
		keywords: []string{"iron", "irons", "approach", "jern", "innspill"},
		replies: map[string]string{
			"en": `Iron play is all about consistent low point control. Here's how to improve:

1. **Ball Position**: Play standard irons (6-9) center to slightly forward. Long irons a ball forward.

2. **Contact Drill**: Place a tee in the ground 2 inches in front of your ball. Your goal is to brush the grass AFTER the ball, at the tee location.

3. **Weight**: At impact, 70-80% of your weight should be on your lead foot.

**Practice Routine**: Hit 5 shots each with 8-iron, 7-iron, 6-iron, focusing purely on ball-first contact. Don't worry about distance - just quality strikes.`,
			"no": `Jernspill handler om å kontrollere bunnpunktet i svingen. Slik blir du bedre:

1. **Ballplassering**: Vanlige jern (6-9) midt i stillingen eller litt foran. Lange jern en ball lenger frem.

2. **Kontaktøvelse**: Sett en tee i bakken 5 cm foran ballen. Målet er å børste gresset ETTER ballen, ved teen.

3. **Vekt**: I treffet skal 70-80 % av vekten være på fremre fot.

**Treningsrutine**: Slå 5 slag hver med 8-jern, 7-jern og 6-jern med fokus kun på ball først. Ikke tenk på lengde, bare gode treff.`,
		},
	},
	{
		keywords: []string{"wedge", "short game", "chip", "pitch", "kortspill"},
		replies: map[string]string{
			"en": `Short game improvement comes from consistent technique and lots of reps. Here's a structured approach:

1. **30-Yard Pitch**: Master this first. Use your 56° or 60° wedge with a compact swing. Ball slightly back, weight forward.

2. **Distance Control Ladder**: Hit shots to 10, 20, 30, 40, 50 yards. Develop feel for each distance.

3. **One-Hop-and-Stop**: Practice landing the ball at a specific spot and having it release predictably.

**Key Feel**: In pitching, the big muscles control the swing. Let your arms respond to body rotation, don't flip your hands.`,
			"no": `Bedre kortspill kommer av jevn teknikk og mange repetisjoner. En strukturert tilnærming:

1. **30-meters pitch**: Mestre denne først. Bruk 56° eller 60° wedge med en kompakt sving. Ballen litt bak, vekten frem.

2. **Lengdestige**: Slå til 10, 20, 30, 40 og 50 meter. Bygg følelse for hver lengde.

3. **Ett sprett og stopp**: Øv på å lande ballen på et bestemt punkt og la den rulle forutsigbart.

**Nøkkelfølelse**: I pitching styrer de store musklene svingen. La armene følge kroppsrotasjonen, ikke flipp med hendene.`,
		},
	},
	{
		keywords: []string{"putt", "putting", "green"},
		replies: map[string]string{
			"en": `Putting is 40% of your strokes - it deserves focused practice. Here's how:

1. **Alignment**: Set up a string line on the practice green to check your eye position and putter face.

2. **Speed Control**: Practice lag putting first. Drop 5 balls at 30 feet and focus on getting them within 3 feet.

3. **Short Putt Confidence**: Set up 4 balls around the hole at 3 feet. Don't leave until you make all 4. Then move to 4 feet.

**Gate Drill**: Set two tees just wider than your putter head. Practice striking through the gate for consistent face alignment.`,
			"no": `Putting utgjør rundt 40 % av slagene dine og fortjener fokusert trening:

1. **Sikting**: Spenn en snor på puttinggreenen for å sjekke øyeposisjon og putterblad.

2. **Fartskontroll**: Tren lange putter først. Legg 5 baller på 9 meter og få dem innenfor en meter.

3. **Korte putter**: Legg 4 baller rundt hullet på en meter. Ikke gi deg før alle 4 er i. Gå så til 1,2 meter.

**Portøvelse**: Sett to tees litt bredere enn putterhodet. Slå gjennom porten for et stabilt blad.`,
		},
	},
	{
		keywords: []string{"practice", "drill", "plan", "routine", "trening", "øvelse", "rutine"},
		replies: map[string]string{
			"en": `Here's a structured practice session template based on your goals:

**Warm-Up (10 min)**
- 5 half-swing wedges
- 5 full swing wedges
- 5 mid-irons
- 3 drivers

**Technical Work (20 min)**
- Pick ONE thing to work on
- Use alignment sticks
- Hit 30-40 balls focused on feel

**Performance Practice (15 min)**
- Simulate on-course scenarios
- Change clubs each shot
- Pick targets

**Short Game (15 min)**
- 10 pitch shots to different distances
- 10 chip shots
- 10 putts from various lengths

Remember: Quality over quantity. 50 focused shots beats 100 mindless swings.`,
			"no": `Her er en mal for en strukturert treningsøkt:

**Oppvarming (10 min)**
- 5 halve wedgesvinger
- 5 fulle wedgesvinger
- 5 mellomjern
- 3 drivere

**Teknisk arbeid (20 min)**
- Velg ÉN ting å jobbe med
- Bruk alignment-pinner
- Slå 30-40 baller med fokus på følelse

**Prestasjonstrening (15 min)**
- Simuler situasjoner fra banen
- Bytt kølle hvert slag
- Velg mål

**Kortspill (15 min)**
- 10 pitcher til ulike lengder
- 10 chipper
- 10 putter fra ulike lengder

Husk: Kvalitet foran kvantitet. 50 fokuserte slag slår 100 tankeløse svinger.`,
		},
	},
	{
		keywords: []string{"improve", "better", "lower", "handicap", "forbedre", "bedre"},
		replies: map[string]string{
			"en": `To lower your handicap, focus on these high-impact areas:

1. **Short Game**: The fastest path to lower scores. Most amateurs lose 5+ shots per round within 50 yards.

2. **Course Management**: Play to your strengths. If you hit a fade, aim down the left side. Don't fight your tendencies.

3. **Putting Inside 5 Feet**: These should be automatic. Practice until you rarely miss inside 5 feet.

4. **Consistency Over Distance**: A straight 230-yard drive beats a 280-yard slice into the trees.

Based on typical handicap breakdowns, working on your short game and putting will give you the fastest improvement. Would you like specific drills for any of these areas?`,
			"no": `For å senke handicapet, fokuser på disse områdene:

1. **Kortspill**: Den raskeste veien til lavere score. De fleste amatører taper 5+ slag per runde innenfor 50 meter.

2. **Banestrategi**: Spill på styrkene dine. Slår du fade, sikt ned venstre side. Ikke kjemp mot tendensene.

3. **Putter innenfor 1,5 meter**: Disse skal sitte. Tren til du nesten aldri bommer.

4. **Presisjon foran lengde**: En rett drive på 210 meter slår en slice på 255 meter inn i skogen.

Kortspill og putting gir som regel raskest fremgang. Vil du ha konkrete øvelser for noen av disse områdene?`,
		},
	},
}

var fallbackDefault = map[string]string{
	"en": `I'm here to help you improve your golf game! I can assist with:

🎯 **Technique**: Driver, irons, wedges, putting
🔧 **Fixes**: Slice, hook, distance control, consistency
📋 **Practice**: Drills, routines, training plans
📊 **Analysis**: Understanding your shot data and patterns

What aspect of your game would you like to work on? The more specific your question, the better I can help!`,
	"no": `Jeg er her for å hjelpe deg med golfspillet! Jeg kan bistå med:

🎯 **Teknikk**: Driver, jern, wedger, putting
🔧 **Feilretting**: Slice, hook, lengdekontroll, jevnhet
📋 **Trening**: Øvelser, rutiner, treningsplaner
📊 **Analyse**: Forstå slagdataene og mønstrene dine

Hva vil du jobbe med? Jo mer konkret spørsmålet er, jo bedre kan jeg hjelpe!`,
}

// FallbackResponse picks canned advice by keyword. Unknown languages get
// the DefaultLanguage text.
func FallbackResponse(message, lang string) string {
	lang = ResolveLanguage(lang)
	lower := strings.ToLower(message)

	for _, rule := range fallbackRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.replies[lang]
			}
		}
	}
	return fallbackDefault[lang]
}
