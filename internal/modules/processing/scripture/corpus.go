package scripture

// corpus holds verse text by language and citation. English follows the
// World English Bible, Spanish the Reina-Valera 1909, both lightly
// modernized. A citation missing here still resolves, with empty text.
var corpus = map[string]map[string]string{
	LangEnglish: {
		"John 14:27":           "Peace I leave with you. My peace I give to you; not as the world gives, I give to you. Don't let your heart be troubled, neither let it be fearful.",
		"Philippians 4:6-7":    "In nothing be anxious, but in everything, by prayer and petition with thanksgiving, let your requests be made known to God. And the peace of God, which surpasses all understanding, will guard your hearts and your thoughts in Christ Jesus.",
		"Isaiah 26:3":          "You will keep whoever's mind is steadfast in perfect peace, because he trusts in you.",
		"Psalm 4:8":            "In peace I will both lay myself down and sleep, for you, LORD alone, make me live in safety.",
		"Isaiah 40:31":         "But those who wait for the LORD will renew their strength. They will mount up with wings like eagles. They will run, and not be weary. They will walk, and not faint.",
		"Philippians 4:13":     "I can do all things through Christ, who strengthens me.",
		"Psalm 46:1":           "God is our refuge and strength, a very present help in trouble.",
		"Joshua 1:9":           "Be strong and courageous. Don't be afraid. Don't be dismayed, for the LORD your God is with you wherever you go.",
		"1 John 1:9":           "If we confess our sins, he is faithful and righteous to forgive us the sins, and to cleanse us from all unrighteousness.",
		"Ephesians 4:32":       "And be kind to one another, tender hearted, forgiving each other, just as God also in Christ forgave you.",
		"Colossians 3:13":      "Bearing with one another, and forgiving each other, if any man has a complaint against any; even as Christ forgave you, so you also do.",
		"Psalm 103:12":         "As far as the east is from the west, so far has he removed our transgressions from us.",
		"1 Corinthians 13:4-7": "Love is patient and is kind. Love doesn't envy. Love doesn't brag, is not proud. It bears all things, believes all things, hopes all things, and endures all things.",
		"1 John 4:19":          "We love him, because he first loved us.",
		"Romans 8:38-39":       "For I am persuaded that neither death, nor life, nor angels, nor principalities, nor things present, nor things to come, nor powers, nor height, nor depth, nor any other created thing will be able to separate us from God's love which is in Christ Jesus our Lord.",
		"John 15:12":           "This is my commandment, that you love one another, even as I have loved you.",
		"Isaiah 41:10":         "Don't you be afraid, for I am with you. Don't be dismayed, for I am your God. I will strengthen you. Yes, I will help you. Yes, I will uphold you with the right hand of my righteousness.",
		"Psalm 23:4":           "Even though I walk through the valley of the shadow of death, I will fear no evil, for you are with me. Your rod and your staff, they comfort me.",
		"2 Timothy 1:7":        "For God didn't give us a spirit of fear, but of power, love, and self-control.",
		"Psalm 56:3":           "When I am afraid, I will put my trust in you.",
		"Jeremiah 29:11":       "For I know the thoughts that I think toward you, says the LORD, thoughts of peace, and not of evil, to give you hope and a future.",
		"Romans 15:13":         "Now may the God of hope fill you with all joy and peace in believing, that you may abound in hope, in the power of the Holy Spirit.",
		"Lamentations 3:22-23": "It is because of the LORD's loving kindnesses that we are not consumed, because his compassion doesn't fail. They are new every morning. Great is your faithfulness.",
		"Hebrews 11:1":         "Now faith is assurance of things hoped for, proof of things not seen.",
		"James 1:5":            "But if any of you lacks wisdom, let him ask of God, who gives to all liberally and without reproach; and it will be given to him.",
		"Proverbs 3:5-6":       "Trust in the LORD with all your heart, and don't lean on your own understanding. In all your ways acknowledge him, and he will make your paths straight.",
		"Psalm 119:105":        "Your word is a lamp to my feet, and a light for my path.",
		"Jeremiah 17:14":       "Heal me, O LORD, and I will be healed. Save me, and I will be saved; for you are my praise.",
		"Psalm 147:3":          "He heals the broken in heart, and binds up their wounds.",
		"James 5:15":           "And the prayer of faith will heal him who is sick, and the Lord will raise him up.",
		"Matthew 11:28":        "Come to me, all you who labor and are heavily burdened, and I will give you rest.",
		"Psalm 23:1-2":         "The LORD is my shepherd; I shall lack nothing. He makes me lie down in green pastures. He leads me beside still waters.",
		"Psalm 62:1":           "My soul rests in God alone. My salvation is from him.",
		"Romans 8:28":          "We know that all things work together for good for those who love God, for those who are called according to his purpose.",
		"Ephesians 2:10":       "For we are his workmanship, created in Christ Jesus for good works, which God prepared before that we would walk in them.",
		"Proverbs 16:3":        "Commit your deeds to the LORD, and your plans shall succeed.",
		"1 Thessalonians 5:18": "In everything give thanks, for this is the will of God in Christ Jesus toward you.",
		"Psalm 100:4":          "Enter into his gates with thanksgiving, into his courts with praise. Give thanks to him, and bless his name.",
		"Psalm 107:1":          "Give thanks to the LORD, for he is good, for his loving kindness endures forever.",
		"Psalm 23:1":           "The LORD is my shepherd; I shall lack nothing.",
		"Isaiah 9:6":           "For to us a child is born. To us a son is given; and the government will be on his shoulders. His name will be called Wonderful Counselor, Mighty God, Everlasting Father, Prince of Peace.",
		"Luke 1:38":            "Mary said, \"Behold, the servant of the Lord; let it be done to me according to your word.\"",
		"Luke 2:10-11":         "The angel said to them, \"Don't be afraid, for behold, I bring you good news of great joy which will be to all the people. For there is born to you today, in David's city, a Savior, who is Christ the Lord.\"",
		"John 1:14":            "The Word became flesh, and lived among us. We saw his glory, such glory as of the only born Son of the Father, full of grace and truth.",
		"Joel 2:13":            "Tear your heart and not your garments, and turn to the LORD, your God; for he is gracious and merciful, slow to anger, and abundant in loving kindness.",
		"Psalm 51:10":          "Create in me a clean heart, O God. Renew a right spirit within me.",
		"John 11:25":           "Jesus said to her, \"I am the resurrection and the life. He who believes in me will still live, even if he dies.\"",
		"1 Peter 1:3":          "Blessed be the God and Father of our Lord Jesus Christ, who according to his great mercy caused us to be born again to a living hope through the resurrection of Jesus Christ from the dead.",
	},
	LangSpanish: {
		"Juan 14:27":            "La paz os dejo, mi paz os doy; no como el mundo la da, yo os la doy. No se turbe vuestro corazón, ni tenga miedo.",
		"Filipenses 4:6-7":      "Por nada estéis afanosos, sino sean notorias vuestras peticiones delante de Dios en toda oración y ruego, con acción de gracias. Y la paz de Dios, que sobrepasa todo entendimiento, guardará vuestros corazones y vuestros pensamientos en Cristo Jesús.",
		"Isaías 26:3":           "Tú guardarás en completa paz a aquel cuyo pensamiento en ti persevera; porque en ti ha confiado.",
		"Salmos 4:8":            "En paz me acostaré, y asimismo dormiré; porque solo tú, Señor, me haces estar confiado.",
		"Isaías 40:31":          "Pero los que esperan al Señor tendrán nuevas fuerzas; levantarán alas como las águilas; correrán, y no se cansarán; caminarán, y no se fatigarán.",
		"Filipenses 4:13":       "Todo lo puedo en Cristo que me fortalece.",
		"Salmos 46:1":           "Dios es nuestro amparo y fortaleza, nuestro pronto auxilio en las tribulaciones.",
		"Josué 1:9":             "Esfuérzate y sé valiente; no temas ni desmayes, porque el Señor tu Dios estará contigo dondequiera que vayas.",
		"1 Juan 1:9":            "Si confesamos nuestros pecados, él es fiel y justo para perdonar nuestros pecados, y limpiarnos de toda maldad.",
		"Efesios 4:32":          "Antes sed benignos unos con otros, misericordiosos, perdonándoos unos a otros, como Dios también os perdonó a vosotros en Cristo.",
		"Colosenses 3:13":       "Soportándoos unos a otros, y perdonándoos unos a otros si alguno tuviere queja contra otro. De la manera que Cristo os perdonó, así también hacedlo vosotros.",
		"Salmos 103:12":         "Cuanto está lejos el oriente del occidente, hizo alejar de nosotros nuestras rebeliones.",
		"1 Corintios 13:4-7":    "El amor es sufrido, es benigno; el amor no tiene envidia, el amor no es jactancioso, no se envanece. Todo lo sufre, todo lo cree, todo lo espera, todo lo soporta.",
		"1 Juan 4:19":           "Nosotros le amamos a él, porque él nos amó primero.",
		"Romanos 8:38-39":       "Por lo cual estoy seguro de que ni la muerte, ni la vida, ni ángeles, ni principados, ni potestades, ni lo presente, ni lo por venir, ni lo alto, ni lo profundo, ni ninguna otra cosa creada nos podrá separar del amor de Dios, que es en Cristo Jesús Señor nuestro.",
		"Juan 15:12":            "Este es mi mandamiento: Que os améis unos a otros, como yo os he amado.",
		"Isaías 41:10":          "No temas, porque yo estoy contigo; no desmayes, porque yo soy tu Dios que te esfuerzo; siempre te ayudaré, siempre te sustentaré con la diestra de mi justicia.",
		"Salmos 23:4":           "Aunque ande en valle de sombra de muerte, no temeré mal alguno, porque tú estarás conmigo; tu vara y tu cayado me infundirán aliento.",
		"2 Timoteo 1:7":         "Porque no nos ha dado Dios espíritu de cobardía, sino de poder, de amor y de dominio propio.",
		"Salmos 56:3":           "En el día que temo, yo en ti confío.",
		"Jeremías 29:11":        "Porque yo sé los pensamientos que tengo acerca de vosotros, dice el Señor, pensamientos de paz, y no de mal, para daros el fin que esperáis.",
		"Romanos 15:13":         "Y el Dios de esperanza os llene de todo gozo y paz en el creer, para que abundéis en esperanza por el poder del Espíritu Santo.",
		"Lamentaciones 3:22-23": "Por la misericordia del Señor no hemos sido consumidos, porque nunca decayeron sus misericordias. Nuevas son cada mañana; grande es tu fidelidad.",
		"Hebreos 11:1":          "Es, pues, la fe la certeza de lo que se espera, la convicción de lo que no se ve.",
		"Santiago 1:5":          "Y si alguno de vosotros tiene falta de sabiduría, pídala a Dios, el cual da a todos abundantemente y sin reproche, y le será dada.",
		"Proverbios 3:5-6":      "Fíate del Señor de todo tu corazón, y no te apoyes en tu propia prudencia. Reconócelo en todos tus caminos, y él enderezará tus veredas.",
		"Salmos 119:105":        "Lámpara es a mis pies tu palabra, y lumbrera a mi camino.",
		"Jeremías 17:14":        "Sáname, oh Señor, y seré sano; sálvame, y seré salvo; porque tú eres mi alabanza.",
		"Salmos 147:3":          "Él sana a los quebrantados de corazón, y venda sus heridas.",
		"Santiago 5:15":         "Y la oración de fe salvará al enfermo, y el Señor lo levantará.",
		"Mateo 11:28":           "Venid a mí todos los que estáis trabajados y cargados, y yo os haré descansar.",
		"Salmos 23:1-2":         "El Señor es mi pastor; nada me faltará. En lugares de delicados pastos me hará descansar; junto a aguas de reposo me pastoreará.",
		"Salmos 62:1":           "En Dios solamente está acallada mi alma; de él viene mi salvación.",
		"Romanos 8:28":          "Y sabemos que a los que aman a Dios, todas las cosas les ayudan a bien, esto es, a los que conforme a su propósito son llamados.",
		"Efesios 2:10":          "Porque somos hechura suya, creados en Cristo Jesús para buenas obras, las cuales Dios preparó de antemano para que anduviésemos en ellas.",
		"Proverbios 16:3":       "Encomienda al Señor tus obras, y tus pensamientos serán afirmados.",
		"1 Tesalonicenses 5:18": "Dad gracias en todo, porque esta es la voluntad de Dios para con vosotros en Cristo Jesús.",
		"Salmos 100:4":          "Entrad por sus puertas con acción de gracias, por sus atrios con alabanza; alabadle, bendecid su nombre.",
		"Salmos 107:1":          "Alabad al Señor, porque él es bueno; porque para siempre es su misericordia.",
		"Salmos 23:1":           "El Señor es mi pastor; nada me faltará.",
		"Isaías 9:6":            "Porque un niño nos es nacido, hijo nos es dado, y el principado sobre su hombro; y se llamará su nombre Admirable, Consejero, Dios Fuerte, Padre Eterno, Príncipe de Paz.",
		"Lucas 1:38":            "Entonces María dijo: He aquí la sierva del Señor; hágase conmigo conforme a tu palabra.",
		"Lucas 2:10-11":         "Pero el ángel les dijo: No temáis; porque he aquí os doy nuevas de gran gozo, que será para todo el pueblo: que os ha nacido hoy, en la ciudad de David, un Salvador, que es Cristo el Señor.",
		"Juan 1:14":             "Y aquel Verbo fue hecho carne, y habitó entre nosotros, lleno de gracia y de verdad; y vimos su gloria, gloria como del unigénito del Padre.",
		"Joel 2:13":             "Rasgad vuestro corazón, y no vuestros vestidos, y convertíos al Señor vuestro Dios; porque misericordioso es y clemente, tardo para la ira y grande en misericordia.",
		"Salmos 51:10":          "Crea en mí, oh Dios, un corazón limpio, y renueva un espíritu recto dentro de mí.",
		"Juan 11:25":            "Le dijo Jesús: Yo soy la resurrección y la vida; el que cree en mí, aunque esté muerto, vivirá.",
		"1 Pedro 1:3":           "Bendito el Dios y Padre de nuestro Señor Jesucristo, que según su grande misericordia nos hizo renacer para una esperanza viva, por la resurrección de Jesucristo de los muertos.",
	},
}
