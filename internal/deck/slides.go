package deck

// defaultSlides is the compiled-in presentation on the history of computer
// vision, from convolutional networks to video generation.
var defaultSlides = []Slide{
	{
		ID:       1,
		Title:    "Generación Visual",
		Subtitle: "Historia de los modelos",
		Content:  "Bienvenido. Vamos a viajar por la historia de cómo las máquinas aprendieron a ver y, finalmente, a soñar. Desde los primeros píxeles hasta el video fotorrealista.",
		Kind:     KindIntro,
		Image:    "images/Portada_Hist_GenAI.jpg",
	},
	{
		ID:      2,
		Title:   "Cronología de la IA",
		Content: "La historia no es una línea recta, es una explosión. Toca los hitos para explorar cómo pasamos de intentar 'entender' imágenes a 'crearlas'.",
		Kind:    KindTimeline,
	},
	{
		ID:      3,
		Title:   "1989: El Nacimiento de las CNN",
		Content: "Yann LeCun se inspiró en la corteza visual del cerebro. Usó 'convoluciones' (filtros pequeños) para leer códigos postales. La máquina aprende a detectar bordes, luego formas, luego objetos.",
		Kind:    KindCNN,
		Researcher: &Researcher{
			Name:        "Yann LeCun",
			Role:        "AT&T Labs",
			Description: "Padre de las Redes Convolucionales",
			ImageURL:    "images/LeCun.jpg",
		},
	},
	{
		ID:      4,
		Title:   "2012: AlexNet y Deep Learning",
		Content: "Un momento 'Big Bang'. AlexNet ganó ImageNet por goleada usando tres ingredientes clave que definieron la década.",
		Kind:    KindAlexNet,
	},
	{
		ID:      5,
		Title:   "2015: ResNet",
		Content: "Para hacer redes más profundas (Deep Learning real), necesitamos 'atajos'. ResNet permitió entrenar cientos de capas sin que la IA se 'confundiera'.",
		Kind:    KindResNet,
	},
	{
		ID:      6,
		Title:   "2017: Transformers",
		Content: "Todo cambió con el paper 'Attention Is All You Need'. Ashish Vaswani propuso un mecanismo donde la IA mira todo el contexto a la vez, no en secuencia. Nació el cerebro moderno.",
		Kind:    KindAttention,
		Researcher: &Researcher{
			Name:        "Ashish Vaswani",
			Role:        "Google Brain",
			Description: "Co-autor de Transformers",
			ImageURL:    "images/Vaswani.jpeg",
		},
	},
	{
		ID:      7,
		Title:   "2020: Vision Transformer (ViT)",
		Content: "Si cortamos una imagen en pedacitos (parches) y los tratamos como palabras, los Transformers pueden 'ver' mejor que las CNN tradicionales a gran escala.",
		Kind:    KindViT,
	},
	{
		ID:      8,
		Title:   "2021: DALL-E & Generación",
		Content: "La IA ya no solo clasifica (gato vs perro). Ahora crea. Escribe lo que quieras y usa el poder de Gemini para visualizarlo.",
		Kind:    KindGenImage,
	},
	{
		ID:      9,
		Title:   "2022: Difusión Latente",
		Content: "Stable Diffusion y DALL-E 2 perfeccionaron el arte. Comienzan con ruido estático y 'esculpen' la imagen paso a paso hasta que aparece la nitidez.",
		Kind:    KindDiffusion,
	},
	{
		ID:      10,
		Title:   "Actualidad: Video y Sora",
		Content: "La frontera final: Video consistente. Usa la búsqueda de Google para ver qué es lo último que está sucediendo hoy con modelos como Sora o Veo.",
		Kind:    KindVideoSearch,
	},
	{
		ID:      11,
		Title:   "Ética y Futuro",
		Content: "Un gran poder conlleva grandes responsabilidades. Derechos de autor, sesgos y la verdad misma están en juego.",
		Kind:    KindEthics,
	},
	{
		ID:      12,
		Title:   "Conclusión",
		Content: "En una explosión de complejidad técnica que redujo los tiempos de entrenamiento de años a días, hemos pasado de que las arquitecturas solo 'entiendan' las imágenes a que puedan 'crearlas' desde cero. El avance se condensa en esto: la tecnología ha logrado democratizar herramientas que antes requerían supercomputadoras, permitiendo que cualquier usuario, simplemente usando el lenguaje natural, se convierta en un creador capaz de generar mundos visuales de alta fidelidad y realismo.",
		Kind:    KindConclusion,
	},
}
