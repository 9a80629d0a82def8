package types

// Prompt templates for the content generators. The response formats below are
// contracts with the extractors in internal/service; change them together.

// HookPrompt expects the transcript head. The response is a numbered list.
var HookPrompt = `You are an expert TikTok content strategist who creates viral hooks.

Video transcript:
%s

Your task: Generate 10 DIFFERENT viral hook variations for this TikTok video.

VIRAL HOOK PRINCIPLES:
1. Stop the scroll in first 3 seconds
2. Create curiosity gap ("you won't believe...")
3. Promise value or revelation
4. Use pattern interrupts
5. Emotional triggers (shock, curiosity, FOMO)
6. Speak directly to target audience

Generate 10 UNIQUE hooks. Each must:
- Be 5-15 words max
- Match the video's content/tone
- Use different patterns (don't repeat formulas)
- Sound natural for TikTok

Format as numbered list:
1. [hook]
2. [hook]
...
10. [hook]

DO NOT include explanations, just the hooks.`

// CaptionPrompt expects an optional hook line and the transcript head. The
// response is repeated ---CAPTION n--- sections.
var CaptionPrompt = `You are an expert TikTok caption writer and hashtag strategist.

%sVideo transcript:
%s

Generate 5 DIFFERENT caption variations optimized for TikTok.

CAPTION BEST PRACTICES:
1. Start strong (use hook if provided, or create compelling opening)
2. Keep it conversational and authentic
3. Use emojis strategically (2-4 per caption)
4. Include call-to-action (save, share, follow, comment)
5. Max 150 characters (TikTok optimal length)
6. Use line breaks for readability

HASHTAG STRATEGY (10-15 hashtags per caption):
- Mix of trending (#fyp, #foryou, #viral)
- Niche-specific (relevant to content)
- Growing hashtags (moderate volume, less competition)

Format each caption EXACTLY like this:

---CAPTION 1---
[Caption text with emojis and line breaks]

#hashtag1 #hashtag2 #hashtag3 #hashtag4 #hashtag5

---CAPTION 2---
[Different caption approach]

#hashtag1 #hashtag2 #hashtag3 #hashtag4 #hashtag5

[Continue for 5 captions]

Make each caption UNIQUE - different angle, tone, or CTA.`

// MomentPrompt expects the transcript and the target count twice. The
// response is START/END/DESCRIPTION/SCORE records; the extractor tolerates
// field reordering and partial noise.
var MomentPrompt = `You are a TikTok video editor expert at finding viral moments.

Video transcript:
%s

Your task: Identify the %d BEST moments from this video that would make viral TikTok clips.

VIRAL MOMENT CRITERIA:
1. Hook potential - grabs attention immediately
2. Value density - packs insight/entertainment quickly
3. Emotional impact - makes people feel something
4. Shareability - people want to send this
5. Standalone quality - works without full context
6. Optimal length - 15-60 seconds ideal

Format EXACTLY like this:
1.
START: 00:15
END: 00:42
DESCRIPTION: Shows the shocking before/after transformation
SCORE: 95

2.
START: 01:23
END: 01:58
DESCRIPTION: The aha moment where technique is revealed
SCORE: 88

Continue for %d moments. Prioritize VARIETY - different types of hooks, emotions, content angles.`
