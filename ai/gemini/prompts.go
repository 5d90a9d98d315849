package gemini

// layoutPrompt instructs the model to behave as a layout extraction service:
// structured JSON only, page text plus a full table cell inventory with spans.
const layoutPrompt = `You are a document layout extraction service. Analyze the attached PDF and return ONLY a JSON object with this exact structure, no prose and no markdown:

{
  "pages": [
    {
      "pageNumber": 1,
      "width": 8.5,
      "height": 11,
      "unit": "inch",
      "content": "full narrative text of the page, excluding table contents"
    }
  ],
  "tables": [
    {
      "rowCount": 3,
      "columnCount": 2,
      "pageNumber": 1,
      "cells": [
        {
          "content": "Revenue",
          "rowIndex": 0,
          "columnIndex": 0,
          "rowSpan": 1,
          "columnSpan": 1,
          "kind": "rowHeader"
        }
      ]
    }
  ]
}

Rules:
- Include every page, in order, even pages with little text.
- Include every table with every cell. Report merged cells once with rowSpan/columnSpan covering the merged area.
- "kind" is one of: "columnHeader", "rowHeader", "content". Omit it when unsure.
- Preserve cell text exactly, including currency symbols and thousands separators.
- Do not summarize, translate or reformat any extracted text.`
