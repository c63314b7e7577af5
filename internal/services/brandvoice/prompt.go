package brandvoice

// analysisPromptTemplate asks for a strict-JSON brand voice profile.
// The two format arguments are the brand description line and the
// joined caption samples.
const analysisPromptTemplate = `You are a brand strategist analyzing the voice and tone of a social media brand.

Analyze the following Instagram content from %s.

Instagram post captions:
%s

Provide a detailed brand voice analysis as valid JSON with this exact structure:

{
    "tone_attributes": {
        "authoritative": <0.0-1.0>,
        "warm": <0.0-1.0>,
        "professional": <0.0-1.0>,
        "playful": <0.0-1.0>,
        "urgent": <0.0-1.0>,
        "inspirational": <0.0-1.0>,
        "educational": <0.0-1.0>,
        "exclusive": <0.0-1.0>
    },
    "vocabulary_patterns": {
        "power_words": ["list of frequently used impactful words"],
        "industry_jargon": ["salon-specific terms used"],
        "avoided_words": ["words/phrases the brand never uses"],
        "signature_phrases": ["recurring brand phrases"]
    },
    "sentence_structure": {
        "avg_word_count": <number>,
        "style": "short_punchy | flowing | mixed",
        "uses_fragments": <boolean>,
        "uses_questions": <boolean>,
        "uses_commands": <boolean>
    },
    "emoji_usage": {
        "frequency": "none | minimal | moderate | heavy",
        "preferred_emojis": ["list of emojis if used"],
        "placement": "beginning | end | inline | none"
    },
    "hashtag_strategy": {
        "avg_count": <number>,
        "types": ["branded", "niche", "trending"],
        "placement": "inline | end | first_comment"
    },
    "cta_patterns": {
        "styles": ["list of CTA formats used"],
        "frequency": "every_post | most_posts | occasional"
    },
    "overall_personality": "A 2-3 sentence summary of the brand voice personality",
    "writing_guidelines": "A detailed paragraph of specific do's and don'ts for writing as this brand"
}

Return ONLY valid JSON, no other text.`
