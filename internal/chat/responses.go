package chat

// frameworkGuidance is the static framework-intent reply. It has no data
// dependency on the catalog.
const frameworkGuidance = `HEARTH hunts follow the PEAK framework with ABLE-structured hypotheses.

PEAK splits a hunt into three phases:
- Prepare: pick the hypothesis, scope the data sources, and define what "normal" looks like.
- Execute: run the queries, pivot on the results, and separate signal from noise.
- Act with Knowledge: document findings, turn durable signal into detections, and feed lessons back into the catalog.

ABLE keeps the hypothesis concrete:
- Actor: who would perform the behaviour.
- Behavior: the specific activity you expect to observe.
- Location: where in the environment it would appear.
- Evidence: the data that would prove or disprove it.

Every hunt in the catalog records its hypothesis, tactic, and supporting notes so you can take it straight into a PEAK-style investigation.`

// helpText is the static help-intent reply.
const helpText = `I can help you explore the hunts catalog. Try:
- "show me Persistence hunts" to search by keyword or tactic
- "what tactics are covered" to explore by MITRE ATT&CK tactic
- "how many hunts do we have" for catalog statistics
- "tell me about the PEAK framework" for methodology guidance

You can also browse by category: Flames are hypothesis-driven hunts, Embers are baseline explorations, and Alchemy covers model-assisted hunting.`
